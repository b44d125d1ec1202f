package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/loader"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

var sortCycle = []listing.SortKey{
	listing.SortPriceAsc,
	listing.SortPriceDesc,
	listing.SortRecencyDesc,
	listing.SortMatchScoreDesc,
}

// statusCycle lists the status filters offered per collection; "" clears it.
var statusCycle = map[model.Kind][]string{
	model.KindBooking: {"", "pending", "confirmed", "cancelled"},
	model.KindPayment: {"", "partial", "paid"},
}

const pageSizeStep = 5

type loadedMsg struct{ err error }

// Browser is an interactive list view over one collection. The collection
// is fetched once per refresh; filtering, sorting and paging run locally on
// the snapshot.
type Browser struct {
	ctx    context.Context
	title  string
	kind   model.Kind
	coll   *loader.Collection[model.Record]
	state  *listing.State
	policy listing.MissingPolicy
	color  bool

	page      listing.Page[model.Record]
	cursor    int
	searching bool
	input     string
	loaded    bool
	err       error
	status    string
	width     int
	height    int
}

// NewBrowser creates a browser seeded with q. Init triggers the first fetch.
func NewBrowser(ctx context.Context, title string, kind model.Kind, coll *loader.Collection[model.Record], q listing.Query, policy listing.MissingPolicy, color bool) Browser {
	return Browser{
		ctx:    ctx,
		title:  title,
		kind:   kind,
		coll:   coll,
		state:  listing.StateFromQuery(q),
		policy: policy,
		color:  color,
		width:  DefaultWidth,
		status: "Loading…",
	}
}

// Page returns the page currently on screen.
func (b Browser) Page() listing.Page[model.Record] { return b.page }

// State returns the browser's list state.
func (b Browser) State() *listing.State { return b.state }

// Selected returns the record under the cursor.
func (b Browser) Selected() (model.Record, bool) {
	if b.cursor < 0 || b.cursor >= len(b.page.Items) {
		return model.Record{}, false
	}
	return b.page.Items[b.cursor], true
}

func (b Browser) Init() tea.Cmd {
	return b.refresh()
}

func (b Browser) refresh() tea.Cmd {
	coll, ctx := b.coll, b.ctx
	return func() tea.Msg {
		return loadedMsg{err: coll.Refresh(ctx)}
	}
}

// apply reruns the pipeline over the current snapshot.
func (b *Browser) apply() {
	b.page = listing.Apply(b.state, b.coll.Items(), b.policy)
	b.cursor = max(min(b.cursor, len(b.page.Items)-1), 0)
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if errors.Is(msg.err, loader.ErrSuperseded) {
			return b, nil
		}
		b.loaded = true
		b.err = msg.err
		b.status = ""
		if msg.err != nil {
			b.status = "Load failed: " + msg.err.Error()
		}
		b.apply()
		return b, nil
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case tea.KeyMsg:
		if b.searching {
			return b.updateSearch(msg)
		}
		return b.updateList(msg)
	}
	return b, nil
}

func (b Browser) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return b, tea.Quit
	case tea.KeyEsc:
		b.searching = false
		b.input = ""
		return b, nil
	case tea.KeyEnter:
		b.searching = false
		c := b.state.Criteria()
		c.Search = strings.TrimSpace(b.input)
		b.state.SetCriteria(c)
		b.cursor = 0
		b.apply()
		return b, nil
	case tea.KeyBackspace:
		if r := []rune(b.input); len(r) > 0 {
			b.input = string(r[:len(r)-1])
		}
		return b, nil
	case tea.KeySpace:
		b.input += " "
		return b, nil
	case tea.KeyRunes:
		b.input += string(msg.Runes)
		return b, nil
	}
	return b, nil
}

func (b Browser) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.page.Items)-1 {
			b.cursor++
		}
	case "right", "l", "n":
		b.state.Next()
		b.cursor = 0
		b.apply()
	case "left", "h", "p":
		b.state.Prev()
		b.cursor = 0
		b.apply()
	case "g":
		b.state.SetPage(1)
		b.cursor = 0
		b.apply()
	case "s":
		i := slices.Index(sortCycle, b.state.SortKey())
		b.state.SetSort(sortCycle[(i+1)%len(sortCycle)])
		b.cursor = 0
		b.apply()
	case "f":
		cycle, ok := statusCycle[b.kind]
		if !ok {
			return b, nil
		}
		c := b.state.Criteria()
		i := slices.Index(cycle, strings.ToLower(c.Status))
		c.Status = cycle[(i+1)%len(cycle)]
		b.state.SetCriteria(c)
		b.cursor = 0
		b.apply()
	case "+", "=":
		b.state.SetPageSize(b.state.PageSize() + pageSizeStep)
		b.apply()
	case "-":
		if size := b.state.PageSize() - pageSizeStep; size > 0 {
			b.state.SetPageSize(size)
			b.apply()
		}
	case "/":
		b.searching = true
		b.input = b.state.Criteria().Search
	case "r":
		b.status = "Refreshing…"
		return b, b.refresh()
	}
	return b, nil
}

func (b Browser) View() string {
	title := b.title
	if b.color {
		title = titleStyle.Render(title)
	}
	lines := []string{title + "  " + b.criteriaLine(), ""}

	if !b.loaded {
		lines = append(lines, b.status)
		return strings.Join(lines, "\n")
	}
	lines = append(lines, Table(b.kind, b.page.Items, b.cursor, b.width, b.color), "")

	footer := Summary(b.page, b.state.SortKey())
	if b.page.HasPrev() {
		footer = "‹ " + footer
	}
	if b.page.HasNext() {
		footer += " ›"
	}
	if b.color {
		footer = mutedStyle.Render(footer)
	}
	lines = append(lines, footer)

	switch {
	case b.searching:
		lines = append(lines, "/"+b.input+"█")
	case b.status != "":
		st := b.status
		if b.color && b.err != nil {
			st = errorStyle.Render(st)
		}
		lines = append(lines, st)
	default:
		help := "j/k move · h/l page · s sort · / search · + - size · r refresh · q quit"
		if _, ok := statusCycle[b.kind]; ok {
			help = "j/k move · h/l page · s sort · f status · / search · + - size · r refresh · q quit"
		}
		if b.color {
			help = mutedStyle.Render(help)
		}
		lines = append(lines, help)
	}
	return strings.Join(lines, "\n")
}

func (b Browser) criteriaLine() string {
	c := b.state.Criteria()
	var parts []string
	if c.Status != "" {
		parts = append(parts, "status="+c.Status)
	}
	if c.PaymentStatus != "" {
		parts = append(parts, "payment="+c.PaymentStatus)
	}
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", c.Search))
	}
	if c.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min_price=%g", *c.MinPrice))
	}
	if c.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max_price=%g", *c.MaxPrice))
	}
	if c.MinCapacity != nil {
		parts = append(parts, fmt.Sprintf("guests>=%d", *c.MinCapacity))
	}
	if len(parts) == 0 {
		return ""
	}
	s := strings.Join(parts, " ")
	if b.color {
		s = mutedStyle.Render(s)
	}
	return s
}
