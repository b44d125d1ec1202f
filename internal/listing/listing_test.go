package listing

import (
	"math"
	"net/url"
	"slices"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

func rec(id string, price float64, status string) model.Record {
	return model.Record{ID: id, Amount: model.Float(price), Status: status}
}

func ids[T Item](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Record().ID
	}
	return out
}

func TestPipeline_ExampleScenario(t *testing.T) {
	records := []model.Record{
		rec("a", 300, "paid"),
		rec("b", 100, "unpaid"),
		rec("c", 200, "paid"),
	}

	filtered := Filter(records, Criteria{Status: "paid"})
	if got := ids(filtered); !slices.Equal(got, []string{"a", "c"}) {
		t.Fatalf("filter: got %v, want [a c]", got)
	}

	sorted := Sort(filtered, SortPriceAsc, MissingAsZero)
	if got := ids(sorted); !slices.Equal(got, []string{"c", "a"}) {
		t.Fatalf("sort: got %v, want [c a]", got)
	}

	p := Paginate(sorted, 2, 1)
	if got := ids(p.Items); !slices.Equal(got, []string{"a"}) {
		t.Errorf("page 2: got %v, want [a]", got)
	}
	if p.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", p.TotalPages)
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	var records []model.Record
	if got := Filter(records, Criteria{Status: "paid"}); len(got) != 0 {
		t.Errorf("filter on empty = %v", got)
	}
	if got := Sort(records, SortPriceDesc, MissingAsZero); len(got) != 0 {
		t.Errorf("sort on empty = %v", got)
	}
	p := Paginate(records, 1, 10)
	if p.Items == nil || len(p.Items) != 0 {
		t.Errorf("Items = %#v, want empty non-nil slice", p.Items)
	}
	if p.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", p.TotalPages)
	}
}

func TestFilter_SearchNoMatch(t *testing.T) {
	records := []model.Record{{ID: "1", Name: "Garden Wedding"}}
	if got := Filter(records, Criteria{Search: "conference"}); len(got) != 0 {
		t.Errorf("got %v, want empty", ids(got))
	}
}

func TestFilter_SearchAnyField(t *testing.T) {
	records := []model.Record{
		{ID: "name", Name: "Beach PARTY"},
		{ID: "desc", Description: "a quiet party by the lake"},
		{ID: "cat", Category: "Party"},
		{ID: "none", Name: "Gala", Description: "formal", Category: "corporate"},
	}
	got := ids(Filter(records, Criteria{Search: "  party "}))
	if !slices.Equal(got, []string{"name", "desc", "cat"}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_MissingFieldsExcluded(t *testing.T) {
	records := []model.Record{
		{ID: "nostatus", Amount: model.Float(10), Capacity: model.Int(5)},
		{ID: "full", Status: "confirmed", Amount: model.Float(10), Capacity: model.Int(5)},
		{ID: "noprice", Status: "confirmed", Capacity: model.Int(5)},
		{ID: "nocap", Status: "confirmed", Amount: model.Float(10)},
	}
	for _, tc := range []struct {
		name string
		c    Criteria
		want []string
	}{
		{"status", Criteria{Status: "Confirmed"}, []string{"full", "noprice", "nocap"}},
		{"price", Criteria{MaxPrice: model.Float(50)}, []string{"nostatus", "full", "nocap"}},
		{"capacity", Criteria{MinCapacity: model.Int(1)}, []string{"nostatus", "full", "noprice"}},
		{"all means unset", Criteria{Status: "all"}, []string{"nostatus", "full", "noprice", "nocap"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(Filter(records, tc.c)); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFilter_PriceBoundsInclusive(t *testing.T) {
	records := []model.Record{rec("lo", 100, ""), rec("mid", 150, ""), rec("hi", 200, "")}
	got := ids(Filter(records, Criteria{MinPrice: model.Float(100), MaxPrice: model.Float(200)}))
	if !slices.Equal(got, []string{"lo", "mid", "hi"}) {
		t.Errorf("got %v", got)
	}
	got = ids(Filter(records, Criteria{MinPrice: model.Float(101)}))
	if !slices.Equal(got, []string{"mid", "hi"}) {
		t.Errorf("min only: got %v", got)
	}
}

func TestFilter_IdempotentAndMonotonic(t *testing.T) {
	records := []model.Record{
		{ID: "1", Name: "Wedding", Status: "paid", Amount: model.Float(500), Capacity: model.Int(100)},
		{ID: "2", Name: "Birthday", Status: "paid", Amount: model.Float(80), Capacity: model.Int(20)},
		{ID: "3", Name: "Wedding Deluxe", Status: "unpaid", Amount: model.Float(900), Capacity: model.Int(200)},
		{ID: "4", Name: "Corporate", Status: "paid"},
	}
	c := Criteria{Status: "paid"}
	once := Filter(records, c)
	twice := Filter(once, c)
	if !slices.Equal(ids(once), ids(twice)) {
		t.Errorf("not idempotent: %v vs %v", ids(once), ids(twice))
	}

	steps := []Criteria{
		{},
		{Status: "paid"},
		{Status: "paid", MinCapacity: model.Int(10)},
		{Status: "paid", MinCapacity: model.Int(10), Search: "wed"},
	}
	prev := len(records) + 1
	for i, c := range steps {
		n := len(Filter(records, c))
		if n > prev {
			t.Errorf("step %d: adding a criterion grew the result from %d to %d", i, prev, n)
		}
		prev = n
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	records := []model.Record{rec("a", 3, "x"), rec("b", 1, "y")}
	before := slices.Clone(records)
	_ = Filter(records, Criteria{Status: "y"})
	_ = Sort(records, SortPriceAsc, MissingAsZero)
	if !slices.EqualFunc(records, before, func(a, b model.Record) bool { return a.ID == b.ID }) {
		t.Errorf("input reordered: %v", ids(records))
	}
}

func TestSort_Stable(t *testing.T) {
	records := []model.Record{
		rec("a", 100, ""), rec("b", 50, ""), rec("c", 100, ""), rec("d", 50, ""), rec("e", 100, ""),
	}
	got := ids(Sort(records, SortPriceAsc, MissingAsZero))
	if want := []string{"b", "d", "a", "c", "e"}; !slices.Equal(got, want) {
		t.Errorf("asc: got %v, want %v", got, want)
	}
	got = ids(Sort(records, SortPriceDesc, MissingAsZero))
	if want := []string{"a", "c", "e", "b", "d"}; !slices.Equal(got, want) {
		t.Errorf("desc: got %v, want %v", got, want)
	}
}

func TestSort_Deterministic(t *testing.T) {
	now := time.Now()
	records := []model.Record{
		{ID: "1", Score: model.Float(0.4), Timestamp: model.Time(now)},
		{ID: "2", Score: model.Float(0.9)},
		{ID: "3", Score: model.Float(0.4), Timestamp: model.Time(now.Add(time.Hour))},
		{ID: "4"},
	}
	for _, key := range []SortKey{SortMatchScoreDesc, SortRecencyDesc, SortPriceAsc, SortPriceDesc} {
		a := ids(Sort(records, key, MissingAsZero))
		b := ids(Sort(records, key, MissingAsZero))
		if !slices.Equal(a, b) {
			t.Errorf("%s: %v != %v", key, a, b)
		}
	}
}

func TestSort_MissingValues(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	priced := []model.Record{
		rec("p200", 200, ""),
		{ID: "none"},
		rec("p100", 100, ""),
	}
	for _, tc := range []struct {
		name   string
		key    SortKey
		policy MissingPolicy
		want   []string
	}{
		{"zero asc", SortPriceAsc, MissingAsZero, []string{"none", "p100", "p200"}},
		{"zero desc", SortPriceDesc, MissingAsZero, []string{"p200", "p100", "none"}},
		{"last asc", SortPriceAsc, MissingLast, []string{"p100", "p200", "none"}},
		{"last desc", SortPriceDesc, MissingLast, []string{"p200", "p100", "none"}},
		{"exclude", SortPriceAsc, MissingExclude, []string{"p100", "p200"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := ids(Sort(priced, tc.key, tc.policy)); !slices.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	scored := []model.Record{{ID: "none"}, {ID: "half", Score: model.Float(0.5)}, {ID: "neg", Score: model.Float(-0.1)}}
	if got := ids(Sort(scored, SortMatchScoreDesc, MissingAsZero)); !slices.Equal(got, []string{"half", "none", "neg"}) {
		t.Errorf("score: got %v", got)
	}

	dated := []model.Record{{ID: "none"}, {ID: "new", Timestamp: model.Time(now)}, {ID: "old", Timestamp: model.Time(now.AddDate(-1, 0, 0))}}
	if got := ids(Sort(dated, SortRecencyDesc, MissingAsZero)); !slices.Equal(got, []string{"new", "old", "none"}) {
		t.Errorf("recency: got %v", got)
	}
}

func TestPaginate_CoverageAndClamp(t *testing.T) {
	var records []model.Record
	for i := 0; i < 23; i++ {
		records = append(records, rec(string(rune('a'+i)), float64(i), ""))
	}
	for _, size := range []int{1, 5, 7, 10, 23, 50} {
		first := Paginate(records, 1, size)
		var all []string
		for page := 1; page <= first.TotalPages; page++ {
			all = append(all, ids(Paginate(records, page, size).Items)...)
		}
		if !slices.Equal(all, ids(records)) {
			t.Errorf("size %d: pages do not reconstruct the collection: %v", size, all)
		}
	}

	p := Paginate(records, 0, 10)
	if p.Page != 1 || len(p.Items) != 10 {
		t.Errorf("page 0: Page=%d len=%d, want clamp to page 1", p.Page, len(p.Items))
	}
	p = Paginate(records, 99, 10)
	if len(p.Items) != 0 || p.TotalPages != 3 || p.Total != 23 {
		t.Errorf("page 99: %+v", p)
	}
	p = Paginate(records, 1, 0)
	if p.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default %d", p.PageSize, DefaultPageSize)
	}
}

func TestPaginate_HugeInputs(t *testing.T) {
	records := []model.Record{rec("a", 1, ""), rec("b", 2, "")}
	for _, tc := range []struct {
		name       string
		page, size int
		wantItems  int
		wantPages  int
	}{
		{"page near MaxInt/size", math.MaxInt/10 + 1, 10, 0, 1},
		{"page wraps offset negative", 4611686018427387905, 10, 0, 1},
		{"max page", math.MaxInt, 1, 0, 2},
		{"max size", 1, math.MaxInt, 2, 1},
		{"max page and size", math.MaxInt, math.MaxInt, 0, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := Paginate(records, tc.page, tc.size)
			if len(p.Items) != tc.wantItems || p.TotalPages != tc.wantPages || p.Total != 2 {
				t.Errorf("Paginate(page=%d, size=%d) = items %d, pages %d; want items %d, pages %d",
					tc.page, tc.size, len(p.Items), p.TotalPages, tc.wantItems, tc.wantPages)
			}
		})
	}

	q := ParseQuery(url.Values{"page": {"4611686018427387905"}, "page_size": {"10"}},
		Defaults{Sort: SortPriceAsc, PageSize: 10, MaxPageSize: 100})
	if p := Run(records, q, MissingAsZero); len(p.Items) != 0 || p.Items == nil {
		t.Errorf("Run past the end = %+v, want empty non-nil items", p)
	}
}

func TestTotalPages(t *testing.T) {
	for _, tc := range []struct{ total, size, want int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{2, math.MaxInt, 1},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, math.MaxInt, 1},
		{5, 0, 1},
	} {
		if got := TotalPages(tc.total, tc.size); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestParseQuery(t *testing.T) {
	d := Defaults{Sort: SortRecencyDesc, PageSize: 10, MaxPageSize: 50}
	v := url.Values{
		"status":       {"paid"},
		"q":            {"wedding"},
		"min_price":    {"abc"},
		"max_price":    {"500"},
		"min_capacity": {"12"},
		"sort":         {"-price"},
		"page":         {"3"},
		"page_size":    {"500"},
	}
	q := ParseQuery(v, d)
	if q.Criteria.Status != "paid" || q.Criteria.Search != "wedding" {
		t.Errorf("criteria: %+v", q.Criteria)
	}
	if q.Criteria.MinPrice != nil {
		t.Errorf("malformed min_price should be unset, got %v", *q.Criteria.MinPrice)
	}
	if q.Criteria.MaxPrice == nil || *q.Criteria.MaxPrice != 500 {
		t.Errorf("max_price: %v", q.Criteria.MaxPrice)
	}
	if q.Criteria.MinCapacity == nil || *q.Criteria.MinCapacity != 12 {
		t.Errorf("min_capacity: %v", q.Criteria.MinCapacity)
	}
	if q.Sort != SortPriceDesc || q.Page != 3 || q.PageSize != 50 {
		t.Errorf("sort/page/size: %s %d %d", q.Sort, q.Page, q.PageSize)
	}

	q = ParseQuery(url.Values{"sort": {"bogus"}, "page": {"-2"}, "max_price": {"NaN"}}, d)
	if q.Sort != SortRecencyDesc || q.Page != 1 || q.PageSize != 10 || q.Criteria.MaxPrice != nil {
		t.Errorf("fallbacks: %+v", q)
	}

	round := ParseQuery(ParseQuery(v, d).Values(), d)
	if !round.Criteria.Equal(ParseQuery(v, d).Criteria) || round.Sort != SortPriceDesc {
		t.Errorf("Values round trip lost inputs: %+v", round)
	}
}

func TestParseMissingPolicy(t *testing.T) {
	for in, want := range map[string]MissingPolicy{"": MissingAsZero, "LAST": MissingLast, "exclude": MissingExclude} {
		got, err := ParseMissingPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseMissingPolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMissingPolicy("first"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestDefaultSort(t *testing.T) {
	tests := map[model.Kind]SortKey{
		model.KindPackage:        SortPriceAsc,
		model.KindRecommendation: SortMatchScoreDesc,
		model.KindBooking:        SortRecencyDesc,
		model.KindPayment:        SortRecencyDesc,
		model.KindReview:         SortRecencyDesc,
	}
	for kind, want := range tests {
		if got := DefaultSort(kind); got != want {
			t.Errorf("DefaultSort(%s) = %s, want %s", kind, got, want)
		}
	}
}

func TestParseCriteria_MalformedNumbersUnset(t *testing.T) {
	c := ParseCriteria(url.Values{
		"status":    {"all"},
		"min_price": {"cheap"},
		"max_price": {"NaN"},
		"guests":    {"12"},
		"search":    {"garden"},
	})
	if c.MinPrice != nil || c.MaxPrice != nil {
		t.Errorf("price bounds = %v, %v, want unset", c.MinPrice, c.MaxPrice)
	}
	if c.MinCapacity == nil || *c.MinCapacity != 12 {
		t.Errorf("min capacity = %v, want 12", c.MinCapacity)
	}
	if c.Search != "garden" {
		t.Errorf("search = %q", c.Search)
	}
	if len(c.Predicates()) != 2 {
		t.Errorf("predicates = %d, want 2 (status all is unset)", len(c.Predicates()))
	}
}
