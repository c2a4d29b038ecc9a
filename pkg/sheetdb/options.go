// Package sheetdb provides a spreadsheet-style object model over a sparse
// cell store.
//
// A Client owns a driver.Driver and hands out Sheet and Range views. The
// views hold no cached values: every call goes to the driver, so bounds and
// values always reflect what is currently stored.
package sheetdb

import "log/slog"

// Options configures a Client.
type Options struct {
	// Logger receives debug events. If nil, slog.Default() is used.
	Logger *slog.Logger
	// StrictSetValue makes Range.SetValue reject ranges that are not 1x1,
	// matching the shape check of Range.SetValues. Off by default, where
	// SetValue writes to the range's top-left cell whatever its size.
	StrictSetValue bool
}

// DefaultOptions returns default client options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
