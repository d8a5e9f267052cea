package inference

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// timeLayouts are the accepted textual date forms, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// valuesMatch compares two concrete payloads for the Matches tier. Values
// of the identical underlying type compare directly; otherwise one side is
// resolved to the other's strong type before comparing. No coercion path
// means the position does not match — coercion failure is a non-match, not
// an error.
func valuesMatch(a, b interface{}) bool {
	if reflect.TypeOf(a) == reflect.TypeOf(b) {
		return valuesEqual(a, b)
	}
	if ca, ok := coerceTo(a, b); ok {
		return valuesEqual(ca, b)
	}
	if cb, ok := coerceTo(b, a); ok {
		return valuesEqual(a, cb)
	}
	return false
}

// valuesEqual reports equality of two payloads of the same concrete type.
func valuesEqual(a, b interface{}) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

// coerceTo resolves value to the concrete type of target. Strings parse
// into the target's type (the weakly-typed, text-origin case); int64
// widens to float64. Anything else has no coercion path.
func coerceTo(value, target interface{}) (interface{}, bool) {
	switch target.(type) {
	case int64:
		if s, ok := value.(string); ok {
			if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
				return n, true
			}
		}
	case float64:
		switch v := value.(type) {
		case int64:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	case bool:
		if s, ok := value.(string); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
				return b, true
			}
		}
	case time.Time:
		if s, ok := value.(string); ok {
			if t, ok := parseTime(strings.TrimSpace(s)); ok {
				return t, true
			}
		}
	}
	return nil, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
