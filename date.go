package coverletter

import (
	"strings"
	"time"

	"github.com/alnah/go-coverletter/internal/dateutil"
)

// letterDateFormat is the default date style for cover letters, e.g.
// "January 2, 2024".
const letterDateFormat = "MMMM D, YYYY"

// ResolveDate resolves the letter date field.
//   - "" or "auto" → today in long form ("January 2, 2024")
//   - "auto:FORMAT" → today in a custom format (e.g. "auto:DD/MM/YYYY")
//   - "auto:preset" → today using a named preset (iso, european, us, long)
//   - anything else → returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	if value == "" || strings.EqualFold(value, "auto") {
		goFmt, err := dateutil.ParseDateFormat(letterDateFormat)
		if err != nil {
			return "", err
		}
		return t.Format(goFmt), nil
	}
	return dateutil.ResolveDate(value, t)
}
