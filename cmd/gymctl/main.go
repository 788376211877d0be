package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "gymctl",
	Short: "gymctl administers the gym management database from your terminal",
	Long:  "gymctl seeds demo data, prints dashboard stats, and checks storage health against the same database the server uses.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "gym.db", "Path to SQLite database")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(doctorCmd)
}

// openDB opens the database and ensures the schema exists.
func openDB() (*docstore.DB, func(), error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.InitDB(sqldb); err != nil {
		sqldb.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}
	return docstore.New(sqldb), func() { sqldb.Close() }, nil
}
