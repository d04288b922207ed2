package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/luisnguyen2k9-alt/LibraNCT/configs"
	"github.com/luisnguyen2k9-alt/LibraNCT/internal/identity"
)

func main() {
	root := &cobra.Command{
		Use:           "libranct",
		Short:         "LibraNCT library lending service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newSeedCmd(), newTokenCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newTokenCmd() *cobra.Command {
	var email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token for local use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configs.LoadConfig()
			verifier := identity.NewVerifier(cfg.JWTSecret, cfg.AdminEmails)
			token, err := verifier.MintToken(email, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "admin@libranct.us.to", "email claim to embed")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
