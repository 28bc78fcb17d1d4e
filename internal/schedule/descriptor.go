package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// Mode selects which recurrence rule a Descriptor uses.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeWeekly  Mode = "weekly"  // weekday picks the day, 0 = Sunday
	ModeMonthly Mode = "monthly" // monthday picks the day of month
	ModeCustom  Mode = "custom"  // raw 5-field expression, passed through
)

// DefaultExpression fills in whenever an empty schedule must be saved.
const DefaultExpression = "0 8 * * *"

// Descriptor is the structured, editable form of a 5-field cron
// expression (minute hour day-of-month month day-of-week). Field
// tokens are kept verbatim as strings and only coerced to numbers when
// a preview or rebuild needs them, so a malformed token survives an
// edit round-trip untouched.
type Descriptor struct {
	Mode     Mode   `json:"mode"`
	Minute   string `json:"minute"`
	Hour     string `json:"hour"`
	Weekday  string `json:"weekday"`  // 0-6, 0 = Sunday; weekly only
	Monthday string `json:"monthday"` // 1-31; monthly only

	// Raw tracks the last parsed or built expression regardless of
	// mode, so switching the editor to custom mode never loses data.
	Raw string `json:"raw"`
}

// Parse converts a cron expression into a Descriptor. It never fails:
// anything that is not a recognized 5-field shape degrades to custom
// mode with the original text preserved verbatim.
func Parse(text string) Descriptor {
	raw := strings.TrimSpace(text)
	fields := strings.Fields(raw)
	if len(fields) != 5 {
		if raw == "" {
			raw = DefaultExpression
		}
		return Descriptor{Mode: ModeCustom, Raw: raw}
	}

	minute, hour, monthday, month, weekday := fields[0], fields[1], fields[2], fields[3], fields[4]

	d := Descriptor{Minute: minute, Hour: hour, Raw: raw}
	switch {
	case monthday != "*" && month == "*" && (weekday == "*" || weekday == "?"):
		d.Mode = ModeMonthly
		d.Monthday = monthday
	case weekday != "*" && (monthday == "*" || monthday == "?"):
		// The month field is deliberately not inspected here: a
		// specific month combined with a specific weekday still
		// reads as weekly, and the month constraint is lost on the
		// next Build. Matches the dashboard's historical behavior.
		d.Mode = ModeWeekly
		if weekday == "7" {
			weekday = "0" // cron allows 7 as a Sunday alias
		}
		d.Weekday = weekday
	case monthday == "*" && weekday == "*":
		d.Mode = ModeDaily
	default:
		return Descriptor{Mode: ModeCustom, Raw: raw}
	}
	return d
}

// Build renders a Descriptor back into a 5-field cron expression.
// Output always has exactly five fields and round-trips through Parse
// for the daily, weekly and monthly modes.
func Build(d Descriptor) string {
	if d.Mode == ModeCustom {
		raw := strings.TrimSpace(d.Raw)
		if raw == "" {
			return DefaultExpression
		}
		return raw
	}
	minute := orDefault(d.Minute, "0")
	hour := orDefault(d.Hour, "8")
	switch d.Mode {
	case ModeWeekly:
		return fmt.Sprintf("%s %s * * %s", minute, hour, orDefault(d.Weekday, "0"))
	case ModeMonthly:
		return fmt.Sprintf("%s %s %s * *", minute, hour, orDefault(d.Monthday, "1"))
	}
	return fmt.Sprintf("%s %s * * *", minute, hour)
}

// Normalize rewrites an expression through a Parse/Build round-trip.
// Recognized shapes come out canonicalized (Sunday alias collapsed,
// defaults filled); everything else passes through trimmed.
func Normalize(text string) string {
	return Build(Parse(text))
}

// Validate reports whether expr is a well-formed standard cron
// expression. It is advisory only: the editor stores unparseable
// custom expressions verbatim and callers merely warn.
func Validate(expr string) error {
	_, err := cron.ParseStandard(expr)
	return err
}

// ParseOptionalInt coerces free-form input to an int, returning
// fallback for empty or non-numeric text.
func ParseOptionalInt(text string, fallback int) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return n
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
