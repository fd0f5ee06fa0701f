package cli

import (
	"fmt"
	"strings"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of choices, matched
// case-insensitively and stored in its canonical spelling.
type enumValue struct {
	value   string
	choices []string
}

var _ pflag.Value = (*enumValue)(nil)

func newEnumValue(def string, choices ...string) enumValue {
	e := enumValue{choices: choices}
	if err := e.Set(def); err != nil && len(choices) > 0 {
		e.value = choices[0]
	}
	return e
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Type() string { return "string" }

func (e *enumValue) Set(s string) error {
	s = strings.TrimSpace(s)
	for _, c := range e.choices {
		if strings.EqualFold(c, s) {
			e.value = c
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(e.choices, "|"))
}

// filterFlags binds one flag per filter axis. Unset flags leave the axis at None.
type filterFlags struct {
	values map[filter.Axis]*enumValue
}

func addFilterFlags(fs *pflag.FlagSet) *filterFlags {
	statusChoices := []string{model.None, "open", "in-progress", "in_progress", "resolved", "closed"}
	statusChoices = append(statusChoices, filter.StatusOptions()...)

	monthChoices := []string{model.None}
	for i, m := range filter.MonthOptions {
		monthChoices = append(monthChoices, m, fmt.Sprint(i+1), fmt.Sprintf("%02d", i+1))
	}

	f := &filterFlags{values: map[filter.Axis]*enumValue{
		filter.AxisStatus:   {value: model.None, choices: statusChoices},
		filter.AxisCategory: {value: model.None, choices: append([]string{model.None}, filter.CategoryOptions()...)},
		filter.AxisMonth:    {value: model.None, choices: monthChoices},
	}}
	fs.Var(f.values[filter.AxisStatus], "status", "Filter by status (open|in-progress|resolved|closed)")
	fs.Var(f.values[filter.AxisCategory], "category", "Filter by category ("+strings.Join(filter.CategoryOptions(), "|")+")")
	fs.Var(f.values[filter.AxisMonth], "month", "Filter by month (Jan..Dec or 1..12)")

	f.values[filter.AxisYear] = &enumValue{value: model.None}
	f.values[filter.AxisAssignment] = &enumValue{value: model.None}
	fs.Var(&freeValue{f.values[filter.AxisYear]}, "year", "Filter by creation year (e.g. 2024)")
	fs.Var(&freeValue{f.values[filter.AxisAssignment]}, "assignment", "Filter by assignee id, name or role, or Unassigned")
	return f
}

// freeValue accepts any text; year and assignment options depend on the data.
type freeValue struct{ *enumValue }

func (v *freeValue) Set(s string) error {
	v.value = strings.TrimSpace(s)
	return nil
}

// apply copies every set axis into the store's criteria.
func (f *filterFlags) apply(set func(filter.Axis, string) error) error {
	for _, axis := range filter.Axes {
		v := f.values[axis].String()
		if v == "" || v == model.None {
			continue
		}
		if err := set(axis, v); err != nil {
			return err
		}
	}
	return nil
}

func completeChoices(choices []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return choices, cobra.ShellCompDirectiveNoFileComp
	}
}
