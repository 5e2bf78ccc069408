package contentstack

import "time"

// FormatTime renders a timestamp the way the store expects (RFC3339 UTC).
// Zero times map to "" so omitempty drops the field.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ParseTime is lenient about the store's timestamp flavors: RFC3339 with or
// without sub-second precision. Empty or unparseable values map to the zero
// time rather than failing the whole entry.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
