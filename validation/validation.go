package validation

import (
	"net/mail"
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"
)

// Violations maps a field name to a translation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when there is no violation.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Violations: v}
}

// Error carries the violations of a rejected input.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+": "+code)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "out_of_range"
	}
}

// Email checks a bare address; display names are rejected.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		v[field] = "required"
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@"):], ".") {
		v[field] = "invalid_email"
	}
}

// OneOf rejects values outside allowed.
func OneOf[T ~string](field string, val T, allowed []T, v Violations) {
	if !slices.Contains(allowed, val) {
		v[field] = "invalid_choice"
	}
}

// DateParser reports whether s holds a date it understands.
type DateParser func(s string) (time.Time, bool)

// Date accepts an empty value or one that parse understands.
func Date(field, value string, parse DateParser, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	if _, ok := parse(value); !ok {
		v[field] = "invalid_date"
	}
}

// URL requires an absolute http or https address.
func URL(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v[field] = "invalid_url"
	}
}
