package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"ticketdesk/internal/model"
)

var MonthOptions = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthIndex converts a month name ("Jan".."Dec", case-insensitive, full names allowed)
// or a number 1..12 to its zero-padded index ("01".."12").
func MonthIndex(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if n, err := strconv.Atoi(name); err == nil {
		if n < 1 || n > 12 {
			return "", false
		}
		return fmt.Sprintf("%02d", n), true
	}
	if len(name) < 3 {
		return "", false
	}
	prefix := strings.ToLower(name[:3])
	for i, m := range MonthOptions {
		if strings.ToLower(m) == prefix {
			full := strings.ToLower(time.Month(i + 1).String())
			if len(name) > 3 && !strings.HasPrefix(full, strings.ToLower(name)) {
				return "", false
			}
			return fmt.Sprintf("%02d", i+1), true
		}
	}
	return "", false
}

// MonthName is the inverse of MonthIndex ("11" -> "Nov"). Unknown input is returned as-is.
func MonthName(index string) string {
	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil || n < 1 || n > 12 {
		return index
	}
	return MonthOptions[n-1]
}

func StatusOptions() []string {
	out := make([]string, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		out = append(out, string(s))
	}
	return out
}

func CategoryOptions() []string {
	out := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, string(c))
	}
	return out
}

// YearOptions returns the n years ending at now's year, newest first.
func YearOptions(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, 0, n)
	for y := now.Year(); y > now.Year()-n; y-- {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

// AssignmentOptions returns the distinct assignee names in tickets (sorted) followed by Unassigned.
func AssignmentOptions(tickets []model.Ticket) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range tickets {
		name := strings.TrimSpace(t.AssigneeName())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return append(out, Unassigned)
}

// Options returns the selectable values for an axis, without the model.None entry.
func Options(axis Axis, tickets []model.Ticket, now time.Time) []string {
	switch axis {
	case AxisStatus:
		return StatusOptions()
	case AxisCategory:
		return CategoryOptions()
	case AxisYear:
		return YearOptions(now, 100)
	case AxisMonth:
		return append([]string(nil), MonthOptions...)
	case AxisAssignment:
		return AssignmentOptions(tickets)
	default:
		return nil
	}
}
