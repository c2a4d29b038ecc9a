// Package transfer moves sheet contents between drivers and builds JSON
// snapshots of a store.
package transfer

// Options configures snapshot behavior.
type Options struct {
	// DetectTables enables table candidate detection on each sheet.
	DetectTables bool
	// Tables holds the detection thresholds. Zero values use the defaults.
	Tables TableParams
}

// DefaultOptions returns default snapshot options.
func DefaultOptions() Options {
	return Options{
		DetectTables: true,
		Tables:       DefaultTableParams(),
	}
}

func (o Options) tableParams() TableParams {
	if o.Tables == (TableParams{}) {
		return DefaultTableParams()
	}
	return o.Tables
}
