package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"university_backend/internals/databases/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "AutoMigrate semua tabel",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := migrations.AutoMigrate(db.WithContext(cmd.Context())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(migrations.Models()))
			return nil
		},
	}
}
