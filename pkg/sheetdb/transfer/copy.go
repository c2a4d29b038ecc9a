package transfer

import (
	"fmt"
	"slices"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
)

// Copy copies sheets from src to dst, creating them in dst as needed and
// replacing whatever dst held in them. With no names every sheet of src is
// copied in src's order.
//
// Each sheet is written before the destination cells outside the copied
// area are cleared, so a failed write leaves the old contents in place. Copy
// is not atomic across sheets or drivers: an error partway through leaves the
// sheets copied so far replaced.
func Copy(dst, src driver.Driver, names ...string) error {
	all, err := src.SheetNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = all
	}

	for _, name := range names {
		if !slices.Contains(all, name) {
			return driver.SheetNotFound(name)
		}
		if err := copySheet(dst, src, name); err != nil {
			return fmt.Errorf("copy sheet %q: %w", name, err)
		}
	}
	return nil
}

func copySheet(dst, src driver.Driver, name string) error {
	grid, rows, cols, err := readAll(src, name)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		rows, cols = 0, 0
	}
	if err := dst.CreateSheet(name, 0); err != nil {
		return err
	}

	dstRow, err := dst.LastRow(name)
	if err != nil {
		return err
	}
	dstCol, err := dst.LastColumn(name)
	if err != nil {
		return err
	}

	if len(grid) > 0 {
		if err := dst.Write(name, 1, 1, grid); err != nil {
			return err
		}
	}

	// Cells right of the copied block, then everything below it.
	for _, r := range []driver.Region{
		{StartRow: 1, StartCol: cols + 1, NumRows: min(rows, dstRow), NumCols: dstCol - cols},
		{StartRow: rows + 1, StartCol: 1, NumRows: dstRow - rows, NumCols: dstCol},
	} {
		if r.NumRows <= 0 || r.NumCols <= 0 {
			continue
		}
		if err := dst.Clear(name, r); err != nil {
			return err
		}
	}
	return nil
}

// Mirror makes dst hold exactly the sheets of src: every sheet is copied and
// sheets of dst that src lacks are deleted afterwards.
func Mirror(dst, src driver.Driver) error {
	if err := Copy(dst, src); err != nil {
		return err
	}
	keep, err := src.SheetNames()
	if err != nil {
		return err
	}
	existing, err := dst.SheetNames()
	if err != nil {
		return err
	}
	for _, name := range existing {
		if slices.Contains(keep, name) {
			continue
		}
		if err := dst.DeleteSheet(name); err != nil {
			return fmt.Errorf("drop sheet %q: %w", name, err)
		}
	}
	return nil
}
