package bridge

import (
	"encoding/json"
	"time"

	"github.com/ukaji3/sheetdb-go/pkg/sheetdb"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/driver"
	"github.com/ukaji3/sheetdb-go/pkg/sheetdb/env"
)

// RegisterClient registers the spreadsheet functions backed by c.
// Ranges are given as possibly sheet-qualified notation, e.g. "Sheet1!A1:B2".
func RegisterClient(d *Dispatcher, c *sheetdb.Client) {
	d.Register("getSheetNames", func(args []json.RawMessage) (any, error) {
		sheets, err := c.Sheets()
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(sheets))
		for _, s := range sheets {
			names = append(names, s.Name())
		}
		return names, nil
	})

	d.Register("insertSheet", func(args []json.RawMessage) (any, error) {
		name, err := arg[string](args, 0)
		if err != nil {
			return nil, err
		}
		position, err := optArg(args, 1, 0)
		if err != nil {
			return nil, err
		}
		s, err := c.InsertSheetAt(name, position)
		if err != nil {
			return nil, err
		}
		return s.Name(), nil
	})

	d.Register("deleteSheet", func(args []json.RawMessage) (any, error) {
		s, err := sheetArg(c, args, 0)
		if err != nil || s == nil {
			return nil, err
		}
		return nil, c.DeleteSheet(s)
	})

	d.Register("getValues", func(args []json.RawMessage) (any, error) {
		r, err := rangeArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		return r.Values()
	})

	d.Register("setValues", func(args []json.RawMessage) (any, error) {
		r, err := rangeArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		values, err := gridArg(args, 1)
		if err != nil {
			return nil, err
		}
		return nil, r.SetValues(values)
	})

	d.Register("setValue", func(args []json.RawMessage) (any, error) {
		r, err := rangeArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		v, err := valueArg(args, 1)
		if err != nil {
			return nil, err
		}
		return nil, r.SetValue(v)
	})

	d.Register("clearRange", func(args []json.RawMessage) (any, error) {
		r, err := rangeArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		return nil, r.Clear()
	})

	d.Register("appendRow", func(args []json.RawMessage) (any, error) {
		s, err := existingSheetArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		row, err := rowArg(args, 1)
		if err != nil {
			return nil, err
		}
		return nil, s.AppendRow(row)
	})

	d.Register("getLastRow", func(args []json.RawMessage) (any, error) {
		s, err := existingSheetArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		return s.LastRow()
	})

	d.Register("getLastColumn", func(args []json.RawMessage) (any, error) {
		s, err := existingSheetArg(c, args, 0)
		if err != nil {
			return nil, err
		}
		return s.LastColumn()
	})
}

// RegisterEnv registers the property, session and date functions.
func RegisterEnv(d *Dispatcher, props *env.Properties, session env.Session) {
	d.Register("getProperty", func(args []json.RawMessage) (any, error) {
		key, err := arg[string](args, 0)
		if err != nil {
			return nil, err
		}
		if v, ok := props.Get(key); ok {
			return v, nil
		}
		return nil, nil
	})

	d.Register("getProperties", func(args []json.RawMessage) (any, error) {
		return props.All(), nil
	})

	d.Register("setProperty", func(args []json.RawMessage) (any, error) {
		key, err := arg[string](args, 0)
		if err != nil {
			return nil, err
		}
		value, err := arg[string](args, 1)
		if err != nil {
			return nil, err
		}
		props.Set(key, value)
		return nil, nil
	})

	d.Register("setProperties", func(args []json.RawMessage) (any, error) {
		all, err := arg[map[string]string](args, 0)
		if err != nil {
			return nil, err
		}
		props.SetAll(all)
		return nil, nil
	})

	d.Register("deleteProperty", func(args []json.RawMessage) (any, error) {
		key, err := arg[string](args, 0)
		if err != nil {
			return nil, err
		}
		props.Delete(key)
		return nil, nil
	})

	d.Register("deleteAllProperties", func(args []json.RawMessage) (any, error) {
		props.DeleteAll()
		return nil, nil
	})

	d.Register("getActiveUserEmail", func(args []json.RawMessage) (any, error) {
		return session.ActiveUserEmail(), nil
	})

	d.Register("getScriptTimeZone", func(args []json.RawMessage) (any, error) {
		return session.ScriptTimeZone(), nil
	})

	d.Register("formatDate", func(args []json.RawMessage) (any, error) {
		t, err := arg[time.Time](args, 0)
		if err != nil {
			return nil, err
		}
		tz, err := optArg(args, 1, session.ScriptTimeZone())
		if err != nil {
			return nil, err
		}
		pattern, err := arg[string](args, 2)
		if err != nil {
			return nil, err
		}
		return env.FormatDate(t, tz, pattern), nil
	})
}

func rangeArg(c *sheetdb.Client, args []json.RawMessage, i int) (*sheetdb.Range, error) {
	ref, err := arg[string](args, i)
	if err != nil {
		return nil, err
	}
	return c.Range(ref)
}

func sheetArg(c *sheetdb.Client, args []json.RawMessage, i int) (*sheetdb.Sheet, error) {
	name, err := arg[string](args, i)
	if err != nil {
		return nil, err
	}
	return c.SheetByName(name)
}

func existingSheetArg(c *sheetdb.Client, args []json.RawMessage, i int) (*sheetdb.Sheet, error) {
	name, err := arg[string](args, i)
	if err != nil {
		return nil, err
	}
	s, err := c.SheetByName(name)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, driver.SheetNotFound(name)
	}
	return s, nil
}
