// Package form validates user-submitted fields.
//
// A Rule checks one field value (with access to the whole form for
// cross-field rules) and returns an error message, or "" when the value is
// valid. A Schema orders fields and their rules; the same schema backs
// server-side validation of submissions and the interactive Form state
// machine used by clients.
package form

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// Rule validates a value; values holds every field of the form.
type Rule func(value string, values map[string]string) string

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9(][0-9 ()\-]{6,18}[0-9]$`)
)

// Required rejects empty or whitespace-only values.
func Required(msg string) Rule {
	return func(v string, _ map[string]string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// Optional wraps rules so they only run when the value is non-empty.
func Optional(rules ...Rule) Rule {
	return func(v string, values map[string]string) string {
		if strings.TrimSpace(v) == "" {
			return ""
		}
		for _, r := range rules {
			if msg := r(v, values); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// NumberRange requires a number within [min, max].
func NumberRange(min, max float64) Rule {
	return func(v string, _ map[string]string) string {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "must be a number"
		}
		if f < min || f > max {
			return fmt.Sprintf("must be between %s and %s", fmtNum(min), fmtNum(max))
		}
		return ""
	}
}

// IntRange requires a whole number within [min, max].
func IntRange(min, max int) Rule {
	return func(v string, _ map[string]string) string {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return "must be a whole number"
		}
		if n < min || n > max {
			return fmt.Sprintf("must be between %d and %d", min, max)
		}
		return ""
	}
}

// Positive requires a number greater than zero.
func Positive() Rule {
	return func(v string, _ map[string]string) string {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return "must be a number"
		}
		if f <= 0 {
			return "must be greater than 0"
		}
		return ""
	}
}

// Pattern requires the value to match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v string, _ map[string]string) string {
		if !re.MatchString(strings.TrimSpace(v)) {
			return msg
		}
		return ""
	}
}

// Email requires a well-formed email address.
func Email() Rule { return Pattern(emailPattern, "must be a valid email address") }

// Phone requires a plausible phone number (digits, spaces, dashes, parentheses, leading +).
func Phone() Rule { return Pattern(phonePattern, "must be a valid phone number") }

// MaxLength limits the value to n characters.
func MaxLength(n int) Rule {
	return func(v string, _ map[string]string) string {
		if utf8.RuneCountInString(v) > n {
			return fmt.Sprintf("must be %d characters or fewer", n)
		}
		return ""
	}
}

// OneOf restricts the value to a fixed set (case-insensitive).
func OneOf(allowed ...string) Rule {
	return func(v string, _ map[string]string) string {
		if slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, strings.TrimSpace(v)) }) {
			return ""
		}
		return "must be one of " + strings.Join(allowed, ", ")
	}
}

// DateNotPast requires a YYYY-MM-DD date that is today or later according to now.
func DateNotPast(now func() time.Time) Rule {
	return func(v string, _ map[string]string) string {
		d, err := time.Parse(model.DateLayout, strings.TrimSpace(v))
		if err != nil {
			return "must be a date in YYYY-MM-DD format"
		}
		t := now()
		today := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		if d.Before(today) {
			return "cannot be in the past"
		}
		return ""
	}
}

func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
