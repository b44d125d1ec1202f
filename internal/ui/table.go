package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
	"github.com/Shivanand-hulikatti/event-planner/internal/receipt"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	statusStyles  = map[string]lipgloss.Style{
		"pending":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"confirmed": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cancelled": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"unpaid":    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		"partial":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"paid":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	}
)

// column is one table column. A zero width takes whatever space is left.
type column struct {
	title  string
	width  int
	status bool
	value  func(model.Record) string
}

func columnsFor(kind model.Kind) []column {
	switch kind {
	case model.KindBooking:
		return []column{
			{title: "Package", width: 20, value: func(r model.Record) string { return r.Name }},
			{title: "Status", width: 10, status: true, value: func(r model.Record) string { return r.Status }},
			{title: "Payment", width: 8, status: true, value: func(r model.Record) string { return r.PaymentStatus }},
			{title: "Total", width: 12, value: func(r model.Record) string { return money(r.Amount) }},
			{title: "Guests", width: 6, value: func(r model.Record) string { return intOrDash(r.Capacity) }},
			{title: "Created", width: 10, value: date},
			{title: "Customer", value: func(r model.Record) string { return r.Description }},
		}
	case model.KindPayment:
		return []column{
			{title: "Booking", width: 12, value: func(r model.Record) string { return r.Name }},
			{title: "Amount", width: 12, value: func(r model.Record) string { return money(r.Amount) }},
			{title: "Method", width: 13, value: func(r model.Record) string { return r.Category }},
			{title: "Status", width: 8, status: true, value: func(r model.Record) string { return r.PaymentStatus }},
			{title: "Paid", width: 10, value: date},
			{title: "Customer", value: func(r model.Record) string { return r.Description }},
		}
	case model.KindReview:
		return []column{
			{title: "Author", width: 18, value: func(r model.Record) string { return r.Name }},
			{title: "Rating", width: 6, value: rating},
			{title: "Date", width: 10, value: date},
			{title: "Comment", value: func(r model.Record) string { return r.Description }},
		}
	case model.KindRecommendation:
		return []column{
			{title: "Match", width: 6, value: percent},
			{title: "Package", width: 24, value: func(r model.Record) string { return r.Name }},
			{title: "Category", width: 12, value: func(r model.Record) string { return r.Category }},
			{title: "Price", width: 12, value: func(r model.Record) string { return money(r.Amount) }},
			{title: "Capacity", width: 8, value: func(r model.Record) string { return intOrDash(r.Capacity) }},
			{title: "Description", value: func(r model.Record) string { return r.Description }},
		}
	default:
		return []column{
			{title: "Package", width: 24, value: func(r model.Record) string { return r.Name }},
			{title: "Category", width: 12, value: func(r model.Record) string { return r.Category }},
			{title: "Price", width: 12, value: func(r model.Record) string { return money(r.Amount) }},
			{title: "Capacity", width: 8, value: func(r model.Record) string { return intOrDash(r.Capacity) }},
			{title: "Description", value: func(r model.Record) string { return r.Description }},
		}
	}
}

// Table renders records as an aligned table. cursor marks a selected row;
// pass -1 for none.
func Table(kind model.Kind, rows []model.Record, cursor, width int, color bool) string {
	cols := columnsFor(kind)
	widths := fitColumns(cols, width)

	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = padRight(c.title, widths[i])
	}
	header := "  " + strings.Join(cells, "  ")
	if color {
		header = headerStyle.Render(header)
	}
	lines := []string{header}
	if len(rows) == 0 {
		empty := "  no results"
		if color {
			empty = mutedStyle.Render(empty)
		}
		return strings.Join(append(lines, empty), "\n")
	}

	for n, r := range rows {
		for i, c := range cols {
			cell := padRight(truncate(c.value(r), widths[i]), widths[i])
			if color && c.status && n != cursor {
				if st, ok := statusStyles[strings.ToLower(c.value(r))]; ok {
					cell = st.Render(cell)
				}
			}
			cells[i] = cell
		}
		prefix := "  "
		if n == cursor {
			prefix = "> "
		}
		line := prefix + strings.Join(cells, "  ")
		if color && n == cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Summary is the pager line shown under a table.
func Summary(p listing.Page[model.Record], sort listing.SortKey) string {
	pages := max(p.TotalPages, 1)
	noun := "results"
	if p.Total == 1 {
		noun = "result"
	}
	return fmt.Sprintf("Page %d of %d · %d %s · sort %s", p.Page, pages, p.Total, noun, sort)
}

// PrintPage writes one page as a table plus its pager line.
func PrintPage(w io.Writer, kind model.Kind, p listing.Page[model.Record], sort listing.SortKey, width int, color bool) error {
	summary := Summary(p, sort)
	if color {
		summary = mutedStyle.Render(summary)
	}
	_, err := fmt.Fprintf(w, "%s\n\n%s\n", Table(kind, p.Items, -1, width, color), summary)
	return err
}

// fitColumns gives the flexible column whatever the fixed ones leave, but
// never less than 10 cells.
func fitColumns(cols []column, width int) []int {
	out := make([]int, len(cols))
	used := 2
	flex := -1
	for i, c := range cols {
		used += 2
		if c.width == 0 {
			flex = i
			continue
		}
		out[i] = c.width
		used += c.width
	}
	if flex >= 0 {
		out[flex] = max(width-used, 10)
	}
	return out
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return receipt.Money(*v)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func date(r model.Record) string {
	if r.Timestamp == nil {
		return "-"
	}
	return r.Timestamp.Format(model.DateLayout)
}

func rating(r model.Record) string {
	if r.Score == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f/5", *r.Score*5)
}

func percent(r model.Record) string {
	if r.Score == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *r.Score*100)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}

func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
