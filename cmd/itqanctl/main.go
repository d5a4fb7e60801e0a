// Command itqanctl: tugas operasional (migrate, seed, admin, pembersihan sesi).
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"itqan_backend/cmd/itqanctl/commands"
	"itqan_backend/internals/configs"
)

func main() {
	syncLogger := func() error { return nil }
	defer func() { _ = syncLogger() }()

	rootCmd := &cobra.Command{
		Use:   "itqanctl",
		Short: "Alat operasional backend Itqan al-Fatiha",
		Long: `itqanctl menjalankan tugas operasional terhadap database yang sama dengan server.
Konfigurasi dibaca dari .env / ENV (DB_DRIVER, DB_DSN atau DB_USER/DB_PASSWORD/DB_HOST/...).`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configs.LoadEnv()
			syncLogger = configs.InitLogger()
			configs.LogEnvStatus()
		},
	}
	commands.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("Error: %v", err)
	}
}
