package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"university_backend/internals/seeds"
)

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi quick services & content blocks dari file YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			res, err := seeds.RunFile(cmd.Context(), db, file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "quick_services=%d content_blocks=%d skipped=%d\n",
				res.QuickServices, res.ContentBlocks, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", seeds.DefaultFile, "Seed YAML file")
	return cmd
}
