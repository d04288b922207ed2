package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/luisnguyen2k9-alt/LibraNCT/configs"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/catalog"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/daemon"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/handlers"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/identity"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/imaging"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/lending"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/middleware"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/notify"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/reporting"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the lending HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configs.LoadConfig())
		},
	}
}

func runServer(cfg configs.Config) error {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st := store.New(cfg.DataDir, log)
	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.AdminEmails)

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	pipeline := notify.NewPipeline(mailer, log)

	catalogSvc := catalog.New(st, log)
	lendingSvc := lending.New(st, log, pipeline, cfg.DefaultBorrowDays)
	reportingSvc := reporting.New(st, log)

	ocrClient := imaging.NewOCRClient(cfg.OCRAPIKey, cfg.OCREndpoint, log)
	signer := imaging.NewSigner(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)

	bookHandler := handlers.NewBookHandler(catalogSvc)
	loanHandler := handlers.NewLoanHandler(lendingSvc, reportingSvc)
	dashHandler := handlers.NewDashboardHandler(reportingSvc)
	statsHandler := handlers.NewStatsHandler(reportingSvc)
	mediaHandler := handlers.NewMediaHandler(ocrClient, signer)

	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))
	r.Use(middleware.JSONContentType)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.HandleFunc("/dashboard-data/{email}", dashHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/search-books", bookHandler.SearchBooks).Methods("GET")
	r.HandleFunc("/process-borrow-request", loanHandler.ProcessBorrow).Methods("POST")
	r.HandleFunc("/process-return-request", loanHandler.ProcessReturn).Methods("POST")
	r.HandleFunc("/user-borrowed-books", loanHandler.UserBorrowedBooks).Methods("GET")
	r.HandleFunc("/ocr-book-cover", mediaHandler.OCRBookCover).Methods("POST")
	r.HandleFunc("/generate-upload-signature", mediaHandler.GetUploadSignature).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.AdminAuth(verifier))
	admin.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	admin.HandleFunc("/all-books", bookHandler.GetAllBooks).Methods("GET")
	admin.HandleFunc("/all-borrowals", statsHandler.GetAllBorrowals).Methods("GET")
	admin.HandleFunc("/books/add", bookHandler.AddBook).Methods("POST")
	admin.HandleFunc("/books/update", bookHandler.UpdateBook).Methods("POST")
	admin.HandleFunc("/books/delete", bookHandler.DeleteBook).Methods("POST")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.AllowedOrigins),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowCredentials(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := daemon.OverdueWatcher{Reporting: reportingSvc, Log: log}
	watcher.Start(ctx)

	server := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: cors(r),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "data_dir", cfg.DataDir)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Info("shutting down gracefully")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}
