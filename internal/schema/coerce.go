package schema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// absent reports whether a field is missing or JSON null.
func absent(r gjson.Result) bool {
	return !r.Exists() || r.Type == gjson.Null
}

// blank reports whether a field is absent or an empty string.
func blank(r gjson.Result) bool {
	return absent(r) || (r.Type == gjson.String && strings.TrimSpace(r.Str) == "")
}

// CoerceNumber accepts a JSON number or a numeric string.
func CoerceNumber(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(r.Str), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// CoerceInt accepts an integral JSON number or an integral numeric string
// within the int64 range.
func CoerceInt(r gjson.Result) (int64, bool) {
	f, ok := CoerceNumber(r)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// CoerceBool is true for the literal true, the number 1 and the strings
// "true", "1" and "yes" in any case. Other booleans, numbers and strings are
// false; objects and arrays do not coerce.
func CoerceBool(r gjson.Result) (bool, bool) {
	switch r.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		return r.Num == 1, true
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(r.Str)) {
		case "true", "1", "yes":
			return true, true
		}
		return false, true
	}
	return false, false
}

// CoerceTime accepts an ISO-8601 string or a Unix timestamp in milliseconds.
func CoerceTime(r gjson.Result) (time.Time, bool) {
	switch r.Type {
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	case gjson.Number:
		return time.UnixMilli(r.Int()).UTC(), true
	}
	return time.Time{}, false
}

// CoerceString accepts JSON strings only.
func CoerceString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}
