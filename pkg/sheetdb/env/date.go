package env

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate formats t in the named time zone using a pattern made of the
// tokens yyyy, MM, dd, HH, mm and ss. Other characters are copied as is.
// An unknown time zone leaves t in its own location.
func FormatDate(t time.Time, timeZone, pattern string) string {
	if loc, err := time.LoadLocation(timeZone); timeZone != "" && err == nil {
		t = t.In(loc)
	}
	r := strings.NewReplacer(
		"yyyy", fmt.Sprintf("%04d", t.Year()),
		"MM", fmt.Sprintf("%02d", int(t.Month())),
		"dd", fmt.Sprintf("%02d", t.Day()),
		"HH", fmt.Sprintf("%02d", t.Hour()),
		"mm", fmt.Sprintf("%02d", t.Minute()),
		"ss", fmt.Sprintf("%02d", t.Second()),
	)
	return r.Replace(pattern)
}
