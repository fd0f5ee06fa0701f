package report

import (
	"bytes"
	"fmt"
	"strings"

	"ticketdesk/internal/filter"
	"ticketdesk/internal/model"

	"github.com/dustin/go-humanize"
)

type Options struct {
	// Title is the document heading; empty means "Ticket report".
	Title string
	// Criteria is echoed under the heading when any axis is set.
	Criteria filter.Criteria
	// Details adds a section per ticket with its description, attachments and chat.
	Details bool
}

// Input is everything a report needs: the canonical list for the summary, the tickets
// to list, and the chat threads keyed by ticket ID.
type Input struct {
	All      []model.Ticket
	Tickets  []model.Ticket
	Messages map[string][]model.Message
}

// RenderMarkdown builds a GitHub-flavored markdown report.
func RenderMarkdown(in Input, opt Options) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Ticket report"
	}
	writeLn("# " + title)
	writeLn("")
	if active := describeCriteria(opt.Criteria); active != "" {
		writeLn("Filtered by " + active + ".")
		writeLn("")
	}

	writeLn("## Summary")
	writeLn("")
	writeLn("| Status | Tickets |")
	writeLn("| --- | ---: |")
	for _, sc := range countByStatus(in.All) {
		writeLn(fmt.Sprintf("| %s | %d |", sc.Status, sc.Count))
	}
	writeLn("")

	writeLn("## Tickets")
	writeLn("")
	if len(in.Tickets) == 0 {
		writeLn("No available tickets")
		return buf.String()
	}
	writeLn("| ID | Title | Status | Category | Created | Assignee |")
	writeLn("| --- | --- | --- | --- | --- | --- |")
	for _, t := range in.Tickets {
		assignee := t.AssigneeName()
		if assignee == "" {
			assignee = "-"
		}
		writeLn(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
			t.ID, cell(t.Title), t.Status, t.Category, t.CreatedAt, cell(assignee)))
	}

	if !opt.Details {
		return buf.String()
	}
	for _, t := range in.Tickets {
		writeLn("")
		writeLn("## " + t.ID + ": " + strings.TrimSpace(t.Title))
		writeLn("")
		writeLn("- Status: " + string(t.Status))
		writeLn("- Category: " + string(t.Category))
		writeLn("- Created: " + t.CreatedAt)
		writeLn("- Updated: " + t.UpdatedAt)
		if t.AssignedTo != nil {
			writeLn(fmt.Sprintf("- Assigned: %s (%s)", t.AssignedTo.Name, t.AssignedTo.Role))
		}

		if desc := strings.TrimSpace(t.Description); desc != "" {
			writeLn("")
			writeLn(desc)
		}

		if len(t.Files) > 0 {
			writeLn("")
			writeLn("### Attachments")
			writeLn("")
			for _, f := range t.Files {
				writeLn(fmt.Sprintf("- %s (%s, %s)", f.Name, typeOrUnknown(f.Type), humanize.Bytes(uint64(max(f.Size, 0)))))
			}
		}

		if msgs := in.Messages[t.ID]; len(msgs) > 0 {
			writeLn("")
			writeLn("### Chat")
			writeLn("")
			for _, m := range msgs {
				body := strings.TrimSpace(m.Body)
				if body == "" {
					body = "(empty)"
				}
				writeLn(fmt.Sprintf("- **%s** %s: %s", m.Source, m.Date, body))
			}
		}
	}
	return buf.String()
}

func countByStatus(tickets []model.Ticket) []model.StatusCount {
	counts := map[model.Status]int{}
	for _, t := range tickets {
		counts[t.Status]++
	}
	out := make([]model.StatusCount, 0, len(model.Statuses))
	for _, st := range model.Statuses {
		out = append(out, model.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

func describeCriteria(c filter.Criteria) string {
	parts := []string{}
	for _, axis := range filter.Axes {
		v := c.Get(axis)
		if v == model.None {
			continue
		}
		if axis == filter.AxisMonth {
			v = filter.MonthName(v)
		}
		parts = append(parts, fmt.Sprintf("%s = %s", axis, v))
	}
	return strings.Join(parts, ", ")
}

// cell escapes the characters that would break a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func typeOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown type"
	}
	return s
}
