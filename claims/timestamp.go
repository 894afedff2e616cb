package claims

import (
	"strconv"
	"strings"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
)

// unit words accepted in duration expressions, longest first so that
// e.g. "minutes" is not rewritten through the "min" rule
var durationUnits = []struct{ word, suffix string }{
	{"seconds", "s"},
	{"secs", "s"},
	{"sec", "s"},
	{"minutes", "m"},
	{"mins", "m"},
	{"min", "m"},
	{"hours", "h"},
	{"hour", "h"},
	{"hrs", "h"},
	{"hr", "h"},
	{"days", "d"},
	{"day", "d"},
	{"weeks", "w"},
	{"week", "w"},
}

// ResolveTime converts val into an absolute UNIX timestamp. A bare
// non-negative integer is the timestamp itself; anything else is tried as a
// duration expression added to now. The second return is false when both
// readings fail, in which case the claim is dropped by the caller.
func ResolveTime(val string, now time.Time) (int64, bool) {
	if ts, err := strconv.ParseInt(val, 10, 64); err == nil {
		if ts < 0 {
			return 0, false
		}
		return ts, true
	}
	d, err := parseDuration(val)
	if err != nil {
		return 0, false
	}
	return now.Unix() + int64(d.Seconds()), true
}

// parseDuration reads a human duration expression such as "+30 min",
// "2 days" or "1h30m". A leading '+', spaces, and unit words are
// normalised before handing off to the duration parser.
func parseDuration(val string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(val))
	s = strings.TrimSpace(strings.TrimPrefix(s, "+"))
	s = strings.ReplaceAll(s, " ", "")
	for _, u := range durationUnits {
		s = strings.ReplaceAll(s, u.word, u.suffix)
	}
	return str2duration.ParseDuration(s)
}
