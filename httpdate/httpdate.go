package httpdate

import "time"

// layout is RFC 1123 with a literal "GMT" instead of Go's numeric/"UTC"
// zone spelling, matching what every HTTP/1.1 client expects.
const layout = "Mon, 02 Jan 2006 15:04:05 GMT"

// Format renders t (converted to UTC, truncated to seconds) as an RFC 1123
// date string.
func Format(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(layout)
}

// Parse reverses Format. It returns an error for any string not in exactly
// that layout.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
