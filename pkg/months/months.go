// Package months turns free-text planting/harvest timing into canonical
// month sets.
package months

import (
	"fmt"
	"regexp"
	"strings"
)

// Month is a calendar month, Jan=0 through Dec=11.
type Month int

const (
	Jan Month = iota
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

var names = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func (m Month) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return names[m]
}

func (m Month) Valid() bool { return m >= Jan && m <= Dec }

func (m Month) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid month %d", int(m))
	}
	return []byte(names[m]), nil
}

func (m *Month) UnmarshalText(b []byte) error {
	v, ok := Lookup(string(b))
	if !ok {
		return fmt.Errorf("unknown month %q", string(b))
	}
	*m = v
	return nil
}

// All returns the twelve months in calendar order.
func All() []Month {
	out := make([]Month, 12)
	for i := range out {
		out[i] = Month(i)
	}
	return out
}

// Lookup matches the first three characters of token against the canonical
// abbreviations, ignoring case.
func Lookup(token string) (Month, bool) {
	r := []rune(strings.ToLower(strings.TrimSpace(token)))
	if len(r) < 3 {
		return 0, false
	}
	prefix := string(r[:3])
	for i, n := range names {
		if strings.ToLower(n) == prefix {
			return Month(i), true
		}
	}
	return 0, false
}

var (
	ampRX    = regexp.MustCompile(`\s*&\s*`)
	seasonRX = regexp.MustCompile(`(?i)\s*\(\d+(st|nd|rd|th)\s*(season)?\s*\)`)
	dashRX   = regexp.MustCompile(`–|-`)
)

// Parse converts text such as "Mar–Apr, Sep" or "Jun-Jul (1st season),
// Nov-Dec (2nd season)" into a deduplicated set sorted Jan..Dec.
// Unrecognised fragments are dropped; it never fails.
func Parse(s string) []Month {
	clean := strings.ToLower(strings.TrimSpace(s))
	if clean == "" || clean == "n/a" || clean == "minimal" || strings.Contains(clean, "not apply") {
		return []Month{}
	}
	if strings.Contains(clean, "year-round") || strings.Contains(clean, "any time") || strings.Contains(clean, "continuous") {
		return All()
	}

	var set [12]bool
	clean = strings.ReplaceAll(clean, ";", ",")
	clean = ampRX.ReplaceAllString(clean, ",")

	for _, part := range strings.Split(clean, ",") {
		part = strings.TrimSpace(seasonRX.ReplaceAllString(strings.TrimSpace(part), ""))
		if dashRX.MatchString(part) {
			bounds := dashRX.Split(part, -1)
			start, okStart := Lookup(bounds[0])
			end, okEnd := Lookup(bounds[1])
			if !okStart || !okEnd {
				continue
			}
			for m := start; ; m = (m + 1) % 12 {
				set[m] = true
				if m == end {
					break
				}
			}
			continue
		}
		if m, ok := Lookup(part); ok {
			set[m] = true
		}
	}

	out := make([]Month, 0, 12)
	for i, on := range set {
		if on {
			out = append(out, Month(i))
		}
	}
	return out
}

// Normalize canonicalises loosely typed month tokens (e.g. from stored
// records) with the same dedupe and ordering rules as Parse.
func Normalize(tokens []string) []Month {
	var set [12]bool
	for _, t := range tokens {
		if m, ok := Lookup(t); ok {
			set[m] = true
		}
	}
	out := make([]Month, 0, len(tokens))
	for i, on := range set {
		if on {
			out = append(out, Month(i))
		}
	}
	return out
}

// Format renders months as a comma-joined list that Parse reads back
// unchanged.
func Format(ms []Month) string {
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		if m.Valid() {
			parts = append(parts, names[m])
		}
	}
	return strings.Join(parts, ", ")
}

// Contains reports whether m is in ms.
func Contains(ms []Month, m Month) bool {
	for _, v := range ms {
		if v == m {
			return true
		}
	}
	return false
}
