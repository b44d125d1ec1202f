package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shivanand-hulikatti/event-planner/internal/listing"
	"github.com/Shivanand-hulikatti/event-planner/internal/loader"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func bookings(n int) []model.Record {
	statuses := []string{"pending", "confirmed", "cancelled"}
	out := make([]model.Record, n)
	for i := range out {
		out[i] = model.Record{
			ID:          fmt.Sprintf("b%02d", i),
			Kind:        model.KindBooking,
			Name:        fmt.Sprintf("Package %02d", i),
			Description: fmt.Sprintf("Customer %02d", i),
			Status:      statuses[i%3],
			Amount:      model.Float(float64(100 * (i + 1))),
			Capacity:    model.Int(10 + i),
		}
	}
	return out
}

func apply(t *testing.T, b Browser, msg tea.Msg) Browser {
	t.Helper()
	next, cmd := b.Update(msg)
	got, ok := next.(Browser)
	if !ok {
		t.Fatalf("Update returned %T, want Browser", next)
	}
	for i := 0; cmd != nil && i < 8; i++ {
		m := cmd()
		if _, quit := m.(tea.QuitMsg); quit || m == nil {
			break
		}
		next, cmd = got.Update(m)
		got = next.(Browser)
	}
	return got
}

func newLoadedBrowser(t *testing.T, recs []model.Record, fetchErr error) Browser {
	t.Helper()
	coll := loader.New[model.Record]("bookings", func(context.Context) ([]model.Record, error) {
		return recs, fetchErr
	}, loader.WithErrorHandler[model.Record](func(string, error) {}))
	t.Cleanup(coll.Close)

	q := listing.Query{Sort: listing.SortPriceAsc, Page: 1, PageSize: 5}
	b := NewBrowser(context.Background(), "Bookings", model.KindBooking, coll, q, listing.MissingAsZero, false)
	return apply(t, b, b.Init()())
}

func TestBrowser_InitialLoad(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)

	p := b.Page()
	if p.Total != 12 || p.TotalPages != 3 || len(p.Items) != 5 {
		t.Fatalf("page = %d items, total %d, pages %d", len(p.Items), p.Total, p.TotalPages)
	}
	if p.Items[0].ID != "b00" {
		t.Errorf("first item = %s, want b00 (cheapest)", p.Items[0].ID)
	}
	if !strings.Contains(b.View(), "Page 1 of 3") {
		t.Errorf("view missing pager:\n%s", b.View())
	}
}

func TestBrowser_Paging(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)

	b = apply(t, b, key("l"))
	b = apply(t, b, key("l"))
	if b.State().Page() != 3 || len(b.Page().Items) != 2 {
		t.Fatalf("page %d with %d items, want page 3 with 2", b.State().Page(), len(b.Page().Items))
	}
	b = apply(t, b, key("l"))
	if b.State().Page() != 3 {
		t.Errorf("next past last page moved to %d", b.State().Page())
	}
	b = apply(t, b, key("g"))
	if b.State().Page() != 1 {
		t.Errorf("g moved to page %d, want 1", b.State().Page())
	}
}

func TestBrowser_SortResetsPage(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)
	b = apply(t, b, key("l"))

	b = apply(t, b, key("s"))
	if b.State().SortKey() != listing.SortPriceDesc {
		t.Fatalf("sort = %s, want price-desc", b.State().SortKey())
	}
	if b.State().Page() != 1 {
		t.Errorf("page = %d after sort change, want 1", b.State().Page())
	}
	if b.Page().Items[0].ID != "b11" {
		t.Errorf("first item = %s, want b11 (most expensive)", b.Page().Items[0].ID)
	}
}

func TestBrowser_StatusFilterCycle(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)

	b = apply(t, b, key("f"))
	if b.State().Criteria().Status != "pending" {
		t.Fatalf("status = %q, want pending", b.State().Criteria().Status)
	}
	if b.Page().Total != 4 {
		t.Errorf("pending total = %d, want 4", b.Page().Total)
	}
	for _, r := range b.Page().Items {
		if r.Status != "pending" {
			t.Errorf("record %s has status %s", r.ID, r.Status)
		}
	}
	for n := 0; n < 3; n++ {
		b = apply(t, b, key("f"))
	}
	if b.State().Criteria().Status != "" || b.Page().Total != 12 {
		t.Errorf("filter did not clear: status %q total %d", b.State().Criteria().Status, b.Page().Total)
	}
}

func TestBrowser_Search(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)

	b = apply(t, b, key("/"))
	for _, r := range "customer 07" {
		if r == ' ' {
			b = apply(t, b, tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		b = apply(t, b, key(string(r)))
	}
	if !strings.Contains(b.View(), "/customer 07") {
		t.Errorf("search prompt missing:\n%s", b.View())
	}
	b = apply(t, b, tea.KeyMsg{Type: tea.KeyEnter})

	if b.Page().Total != 1 || b.Page().Items[0].ID != "b07" {
		t.Fatalf("search result = %+v", b.Page().Items)
	}
	if sel, ok := b.Selected(); !ok || sel.ID != "b07" {
		t.Errorf("selected = %+v, %v", sel, ok)
	}
}

func TestBrowser_SearchEscKeepsCriteria(t *testing.T) {
	b := newLoadedBrowser(t, bookings(3), nil)

	b = apply(t, b, key("/"))
	b = apply(t, b, key("x"))
	b = apply(t, b, tea.KeyMsg{Type: tea.KeyEsc})
	if b.State().Criteria().Search != "" || b.Page().Total != 3 {
		t.Errorf("esc applied search: %q, total %d", b.State().Criteria().Search, b.Page().Total)
	}
}

func TestBrowser_PageSize(t *testing.T) {
	b := newLoadedBrowser(t, bookings(12), nil)
	b = apply(t, b, key("l"))
	b = apply(t, b, key("l"))

	b = apply(t, b, key("+"))
	if b.State().PageSize() != 10 || b.State().Page() != 2 {
		t.Errorf("size %d page %d, want size 10 page 2", b.State().PageSize(), b.State().Page())
	}
	b = apply(t, b, key("-"))
	if b.State().PageSize() != 5 {
		t.Errorf("size = %d, want 5", b.State().PageSize())
	}
}

func TestBrowser_CursorBounds(t *testing.T) {
	b := newLoadedBrowser(t, bookings(3), nil)

	b = apply(t, b, key("k"))
	if sel, _ := b.Selected(); sel.ID != "b00" {
		t.Errorf("cursor moved above first row: %s", sel.ID)
	}
	for n := 0; n < 5; n++ {
		b = apply(t, b, key("j"))
	}
	if sel, _ := b.Selected(); sel.ID != "b02" {
		t.Errorf("cursor = %s, want b02", sel.ID)
	}
}

func TestBrowser_LoadFailure(t *testing.T) {
	b := newLoadedBrowser(t, nil, errors.New("connection refused"))

	if b.Page().Total != 0 {
		t.Errorf("total = %d, want 0", b.Page().Total)
	}
	view := b.View()
	if !strings.Contains(view, "Load failed: connection refused") || !strings.Contains(view, "no results") {
		t.Errorf("view:\n%s", view)
	}
}

func TestBrowser_Quit(t *testing.T) {
	b := newLoadedBrowser(t, bookings(1), nil)
	_, cmd := b.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
