package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/bridge"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver/xlsx"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/env"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/output"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/transfer"
	"github.com/xuri/excelize/v2"
)

func newSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List sheets in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				sheets, err := c.Sheets()
				if err != nil {
					return err
				}
				for _, s := range sheets {
					fmt.Fprintln(cmd.OutOrStdout(), s.Name())
				}
				return nil
			})
		},
	}
}

func newCreateCmd() *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				_, err := c.InsertSheetAt(args[0], position)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&position, "position", 0, "1-based position (0 appends)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a sheet and its cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				s, err := c.SheetByName(args[0])
				if err != nil || s == nil {
					return err
				}
				return c.DeleteSheet(s)
			})
		},
	}
}

func newGetCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "get NAME RANGE",
		Short: "Print the values of a range as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				s, err := existingSheet(c, args[0])
				if err != nil {
					return err
				}
				r, err := s.RangeA1(args[1])
				if err != nil {
					return err
				}
				values, err := r.Values()
				if err != nil {
					return err
				}
				data, err := output.ValuesToJSON(values, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME RANGE JSON",
		Short: "Write a JSON value or 2D array into a range",
		Long: `set writes a 2D JSON array into a range whose shape matches it, or a
single JSON value into the range's top-left cell. The sheet is created if
it does not exist.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				s, err := c.InsertSheet(args[0])
				if err != nil {
					return err
				}
				r, err := s.RangeA1(args[1])
				if err != nil {
					return err
				}
				v := driver.DecodeValue(args[2])
				if grid, ok := toGrid(v); ok {
					return r.SetValues(grid)
				}
				return r.SetValue(v)
			})
		},
	}
}

// toGrid reports whether v is an array of arrays and returns it as rows.
func toGrid(v any) ([][]any, bool) {
	rows, ok := v.([]any)
	if !ok {
		return nil, false
	}
	grid := make([][]any, len(rows))
	for i, row := range rows {
		cells, ok := row.([]any)
		if !ok {
			return nil, false
		}
		grid[i] = cells
	}
	return grid, true
}

func newAppendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "append NAME JSON",
		Short: "Append a JSON array as a row below the last occupied row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, ok := driver.DecodeValue(args[1]).([]any)
			if !ok {
				return fmt.Errorf("row must be a JSON array: %s", args[1])
			}
			return withClient(func(c *sheetdb.Client) error {
				s, err := c.InsertSheet(args[0])
				if err != nil {
					return err
				}
				return s.AppendRow(row)
			})
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear NAME [RANGE]",
		Short: "Clear a range, or the whole sheet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(c *sheetdb.Client) error {
				s, err := existingSheet(c, args[0])
				if err != nil {
					return err
				}
				if len(args) == 1 {
					return s.Clear()
				}
				r, err := s.RangeA1(args[1])
				if err != nil {
					return err
				}
				return r.Clear()
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx [SHEET...]",
		Short: "Copy sheets from a workbook into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			if _, err := os.Stat(inputPath); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", inputPath)
			}
			f, err := excelize.OpenFile(inputPath)
			if err != nil {
				return fmt.Errorf("open %s: %w", inputPath, err)
			}
			// An empty path keeps the source workbook read-only.
			src := xlsx.New(f, "", xlsx.WithLogger(logger))
			defer src.Close()

			return withClient(func(c *sheetdb.Client) error {
				if err := transfer.Copy(c.Driver(), src, args[1:]...); err != nil {
					return fmt.Errorf("import failed: %w", err)
				}
				return nil
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var pretty bool
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the store to an .xlsx workbook or a .json snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := args[0]
			return withClient(func(c *sheetdb.Client) error {
				switch strings.ToLower(filepath.Ext(outputPath)) {
				case ".xlsx":
					return exportWorkbook(c, outputPath)
				case ".json":
					return exportJSON(c, outputPath, pretty)
				default:
					return fmt.Errorf("unsupported export format: %s (must be .xlsx or .json)", outputPath)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func exportWorkbook(c *sheetdb.Client, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	dst, err := xlsx.Open(path, xlsx.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := transfer.Mirror(dst, c.Driver()); err != nil {
		dst.Close()
		return fmt.Errorf("export failed: %w", err)
	}
	return dst.Close()
}

func exportJSON(c *sheetdb.Client, path string, pretty bool) error {
	wb, err := transfer.Snapshot(c.Driver(), filepath.Base(dbPath), transfer.DefaultOptions())
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newServeCmd() *cobra.Command {
	var (
		addr  string
		email string
		props []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the call bridge over HTTP and WebSocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := make(map[string]string, len(props))
			for _, kv := range props {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("property must be KEY=VALUE: %s", kv)
				}
				initial[k] = v
			}

			return withClient(func(c *sheetdb.Client) error {
				d := bridge.NewDispatcher(bridge.WithLogger(logger))
				bridge.RegisterClient(d, c)
				bridge.RegisterEnv(d, env.NewProperties(initial), env.NewSession(email))

				ln, err := net.Listen("tcp", addr)
				if err != nil {
					return err
				}
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				logger.Info("serving call bridge", "addr", ln.Addr().String(), "db", dbPath, "functions", len(d.Names()))
				fmt.Fprintf(cmd.OutOrStdout(), "listening on %s (POST %s, WebSocket %s)\n", ln.Addr(), bridge.RunPath, bridge.WebSocketPath)
				return serveBridge(ctx, ln, d.Handler())
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "Listen address")
	cmd.Flags().StringVar(&email, "email", env.DefaultEmail, "Active user email reported to callers")
	cmd.Flags().StringArrayVar(&props, "property", nil, "Initial script property KEY=VALUE (repeatable)")
	return cmd
}

const shutdownTimeout = 5 * time.Second

// serveBridge serves h on ln until ctx is done, then shuts the server down
// so the caller can close the store after in-flight calls finish.
func serveBridge(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down call bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
