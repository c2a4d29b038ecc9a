// Package main provides the CLI entry point for sheetdb.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb"
)

const defaultDBPath = "sheets.db"

var (
	dbPath  string
	verbose bool
	logger  *slog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetdb",
		Short: "Read and write a local spreadsheet store",
		Long: `sheetdb manages sheets stored in a SQLite database or an .xlsx workbook,
addressing cells with A1 notation.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", envOr("SHEETDB_PATH", defaultDBPath), "Store path (.xlsx for a workbook, anything else for SQLite)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newSheetsCmd(),
		newCreateCmd(),
		newDeleteCmd(),
		newGetCmd(),
		newSetCmd(),
		newAppendCmd(),
		newClearCmd(),
		newImportCmd(),
		newExportCmd(),
		newServeCmd(),
	)
	return rootCmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func openClient() (*sheetdb.Client, error) {
	c, err := sheetdb.Open(dbPath, sheetdb.Options{Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}
	return c, nil
}

// withClient opens the store, runs fn and closes the store, reporting the
// first error.
func withClient(fn func(c *sheetdb.Client) error) (err error) {
	c, err := openClient()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dbPath, cerr)
		}
	}()
	return fn(c)
}

// existingSheet returns the named sheet or an error naming it.
func existingSheet(c *sheetdb.Client, name string) (*sheetdb.Sheet, error) {
	s, err := c.SheetByName(name)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: %q", sheetdb.ErrSheetNotFound, name)
	}
	return s, nil
}
