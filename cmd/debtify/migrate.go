package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debtify/debtify/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Initialize or upgrade the ledger database",
		Long: `Create the schema if absent, apply any pending migrations, and seed
the default categories. Safe to run repeatedly; every other command
performs the same initialization on startup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("Ledger is up to date"))
			return nil
		},
	}
}
