package cli

import (
	"strconv"
	"strings"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"
	"ticketdesk/internal/store"

	"github.com/spf13/cobra"
)

func newTicketsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "Query tickets (read-only; edits happen in the TUI)",
	}
	cmd.AddCommand(newTicketsListCmd(app))
	cmd.AddCommand(newTicketsShowCmd(app))
	cmd.AddCommand(newTicketsSummaryCmd(app))
	cmd.AddCommand(newTicketsNextIDCmd(app))
	return cmd
}

type listMeta struct {
	Total     int             `json:"total"`
	Displayed int             `json:"displayed"`
	Criteria  filter.Criteria `json:"criteria"`
	Sort      filter.SortKey  `json:"sort"`
	Desc      bool            `json:"desc"`
}

type ticketList struct {
	Data []model.Ticket `json:"data"`
	Meta listMeta       `json:"meta"`
}

func (l ticketList) TableHeaders() []string {
	return []string{"ID", "Title", "Status", "Category", "Created", "Assignee"}
}

func (l ticketList) TableRows() [][]string {
	rows := make([][]string, 0, len(l.Data))
	for _, t := range l.Data {
		assignee := t.AssigneeName()
		if assignee == "" {
			assignee = "-"
		}
		rows = append(rows, []string{t.ID, t.Title, string(t.Status), string(t.Category), t.CreatedAt, assignee})
	}
	return rows
}

func newTicketsListCmd(app *App) *cobra.Command {
	var desc bool
	sortKey := newEnumValue("", sortKeyChoices()...)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tickets matching every given filter",
		Args:    cobra.NoArgs,
	}
	filters := addFilterFlags(cmd.Flags())
	cmd.Flags().Var(&sortKey, "sort", "Sort key ("+strings.Join(sortKeyChoices(), "|")+"; default: config table.sort, else id)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	_ = cmd.RegisterFlagCompletionFunc("sort", completeChoices(sortKeyChoices()))
	_ = cmd.RegisterFlagCompletionFunc("status", completeChoices(filter.StatusOptions()))
	_ = cmd.RegisterFlagCompletionFunc("category", completeChoices(filter.CategoryOptions()))
	_ = cmd.RegisterFlagCompletionFunc("month", completeChoices(filter.MonthOptions))

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		st, err := loadStore(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := filters.apply(st.SetFilter); err != nil {
			return writeErr(cmd, err)
		}

		key := filter.SortKey(sortKey.String())
		if !cmd.Flags().Changed("sort") {
			key = filter.SortKey(app.cfg.Table.Sort)
		}
		key, err = filter.ParseSortKey(string(key))
		if err != nil {
			return writeErr(cmd, err)
		}
		if !cmd.Flags().Changed("desc") {
			desc = app.cfg.Table.Desc
		}

		rows := st.Displayed()
		filter.Sort(rows, key, desc)
		app.log.Debug().Strs("criteria", st.Criteria().Active()).Int("displayed", len(rows)).Msg("tickets listed")
		return writeOut(cmd, app, ticketList{
			Data: rows,
			Meta: listMeta{Total: st.Len(), Displayed: len(rows), Criteria: st.Criteria(), Sort: key, Desc: desc},
		})
	}
	return cmd
}

func sortKeyChoices() []string {
	out := make([]string, 0, len(filter.SortKeys))
	for _, k := range filter.SortKeys {
		out = append(out, string(k))
	}
	return out
}

type ticketDetail struct {
	Data ticketWithMessages `json:"data"`
}

type ticketWithMessages struct {
	Ticket   model.Ticket    `json:"ticket"`
	Messages []model.Message `json:"messages"`
}

func (d ticketDetail) TableHeaders() []string { return []string{"Field", "Value"} }

func (d ticketDetail) TableRows() [][]string {
	t := d.Data.Ticket
	assigned := "Unassigned"
	if t.AssignedTo != nil {
		assigned = t.AssignedTo.Name + " (" + string(t.AssignedTo.Role) + ")"
	}
	files := make([]string, 0, len(t.Files))
	for _, f := range t.Files {
		files = append(files, f.Name)
	}
	return [][]string{
		{"ID", t.ID},
		{"Title", t.Title},
		{"Status", string(t.Status)},
		{"Category", string(t.Category)},
		{"Created", t.CreatedAt},
		{"Updated", t.UpdatedAt},
		{"Assigned", assigned},
		{"Files", strings.Join(files, ", ")},
		{"Messages", strconv.Itoa(len(d.Data.Messages))},
		{"Description", t.Description},
	}
}

func newTicketsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "show <ticket-id>",
		Aliases: []string{"get"},
		Short:   "Show one ticket with its chat thread",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.ToUpper(strings.TrimSpace(args[0]))
			t, ok := st.Find(id)
			if !ok {
				return writeErr(cmd, store.NotFoundError{Kind: "ticket", ID: id})
			}
			return writeOut(cmd, app, ticketDetail{Data: ticketWithMessages{Ticket: t, Messages: st.Messages(id)}})
		},
	}
}

type summaryOutput struct {
	Data []model.StatusCount `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func (s summaryOutput) TableHeaders() []string { return []string{"Status", "Tickets"} }

func (s summaryOutput) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Data))
	for _, sc := range s.Data {
		rows = append(rows, []string{string(sc.Status), strconv.Itoa(sc.Count)})
	}
	return rows
}

func newTicketsSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count tickets per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := summaryOutput{Data: st.Summary()}
			out.Meta.Total = st.Len()
			return writeOut(cmd, app, out)
		},
	}
}

func newTicketsNextIDCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next-id",
		Short: "Print the ID the new-ticket form would assign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": st.NextTicketID()}})
		},
	}
}
