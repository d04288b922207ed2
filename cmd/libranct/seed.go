package main

import (
	"fmt"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/luisnguyen2k9-alt/LibraNCT/configs"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/catalog"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/store"
)

type seedEntry struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity int    `json:"quantity"`
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import catalog entries from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.LoadConfig()
			log := slog.New(slog.NewTextHandler(os.Stdout, nil))

			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var entries []seedEntry
			if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}

			cat := catalog.New(store.New(cfg.DataDir, log), log)
			for _, e := range entries {
				book, err := cat.Add(e.Title, e.Author, e.Quantity)
				if err != nil {
					return fmt.Errorf("import %q: %w", e.Title, err)
				}
				fmt.Printf("added %s  %s\n", book.BookID, book.Title)
			}
			fmt.Printf("imported %d books into %s\n", len(entries), cfg.DataDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "books.json", "JSON file with [{title, author, quantity}] entries")
	return cmd
}
