package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"university_backend/internals/configs"
	database "university_backend/internals/databases"
)

var rootCmd = &cobra.Command{
	Use:   "univctl",
	Short: "University backend admin CLI",
	Long: `univctl menjalankan tugas admin langsung ke database:
migrasi, seed YAML, dan perbaikan urutan list.

Examples:
  univctl migrate
  univctl seed --file internals/seeds/data/home.yaml
  univctl lists show --list content-blocks --page home
  univctl lists normalize --list quick-services --dry-run
  univctl lists move --list quick-services --from 0 --to 2`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configs.LoadEnv()
	},
}

var dsn string

// openDB bisa diganti di test.
var openDB = func() (*gorm.DB, error) {
	if dsn != "" {
		return database.Open(dsn)
	}
	return database.Open(configs.DatabaseDSN())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Postgres DSN (default: DATABASE_URL / DB_* env)")
	rootCmd.AddCommand(migrateCmd(), seedCmd(), listsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
