package menu

import (
	"context"
	"sync"
	"testing"

	"kale-admin/internal/api"
	"kale-admin/internal/model"
)

func cat(id string, order int) model.Category {
	return model.Category{ID: id, Name: "cat-" + id, Order: order, IsActive: true}
}

type fakeGateway struct {
	mu      sync.Mutex
	writes  map[string]int
	failIDs map[string]bool

	fetch      []model.Category
	fetchErr   error
	fetchCalls int
}

func (f *fakeGateway) UpdateCategoryOrder(ctx context.Context, id string, order int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return &api.Error{Kind: api.FailureServer, Message: "Server error. Please try again later."}
	}
	if f.writes == nil {
		f.writes = map[string]int{}
	}
	f.writes[id] = order
	return nil
}

func (f *fakeGateway) CategoriesByKind(ctx context.Context, kind model.MenuKind) ([]model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]model.Category{}, f.fetch...), nil
}

func TestPlanMoveGuards(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2), cat("c", 3)}

	cases := []struct {
		name     string
		cats     []model.Category
		src, dst int
	}{
		{"same position", cats, 1, 1},
		{"src out of range", cats, 3, 0},
		{"dst out of range", cats, 0, 3},
		{"negative src", cats, -1, 0},
		{"single element", cats[:1], 0, 0},
		{"empty", nil, 0, 1},
	}
	for _, tc := range cases {
		if got := PlanMove(tc.cats, tc.src, tc.dst); got != nil {
			t.Fatalf("%s: PlanMove = %v, want nil", tc.name, got)
		}
	}
}

func TestPlanMoveRestampsDensely(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2), cat("c", 3)}

	got := PlanMove(cats, 0, 2)
	want := []OrderUpdate{{ID: "b", Order: 1}, {ID: "c", Order: 2}, {ID: "a", Order: 3}}
	if len(got) != len(want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("update %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanMoveSkipsUnchanged(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2), cat("c", 3), cat("d", 4)}

	got := PlanMove(cats, 2, 3)
	want := []OrderUpdate{{ID: "d", Order: 3}, {ID: "c", Order: 4}}
	if len(got) != len(want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("update %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPlanMoveRepairsDuplicatesAndGaps(t *testing.T) {
	// Orders [1,1,3]: a and b tie, c has a gap before it. Fetch order is the
	// display order, so a stays ahead of b until moved.
	cats := []model.Category{cat("a", 1), cat("b", 1), cat("c", 3)}

	got := PlanMove(cats, 0, 1)
	// Final display order b, a, c restamped 1..3: b already 1, c already 3.
	want := []OrderUpdate{{ID: "a", Order: 2}}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("updates = %v, want %v", got, want)
	}
}

func TestPlanMoveDoesNotMutateInput(t *testing.T) {
	cats := []model.Category{cat("b", 2), cat("a", 1)}
	_ = PlanMove(cats, 0, 1)
	if cats[0].ID != "b" || cats[1].ID != "a" {
		t.Fatalf("input mutated: %v", cats)
	}
}

func TestMoveWritesAndReconciles(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2), cat("c", 3)}
	gw := &fakeGateway{
		fetch: []model.Category{cat("a", 3), cat("b", 1), cat("c", 2)},
	}
	e := NewEngine(gw)

	fresh, err := e.Move(context.Background(), model.KindDrinks, cats, 0, 2)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	wantWrites := map[string]int{"b": 1, "c": 2, "a": 3}
	if len(gw.writes) != len(wantWrites) {
		t.Fatalf("writes = %v, want %v", gw.writes, wantWrites)
	}
	for id, order := range wantWrites {
		if gw.writes[id] != order {
			t.Fatalf("write %s = %d, want %d", id, gw.writes[id], order)
		}
	}
	if gw.fetchCalls != 1 {
		t.Fatalf("fetch calls = %d, want 1", gw.fetchCalls)
	}
	// The returned list is the re-fetched one, sorted by order.
	wantIDs := []string{"b", "c", "a"}
	for i, id := range wantIDs {
		if fresh[i].ID != id {
			t.Fatalf("fresh[%d] = %s, want %s", i, fresh[i].ID, id)
		}
	}
}

func TestMoveNoOpIssuesNoCalls(t *testing.T) {
	cats := []model.Category{cat("b", 2), cat("a", 1)}
	gw := &fakeGateway{}
	e := NewEngine(gw)

	out, err := e.Move(context.Background(), model.KindFoods, cats, 1, 1)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(gw.writes) != 0 || gw.fetchCalls != 0 {
		t.Fatalf("no-op still called the service: writes=%v fetches=%d", gw.writes, gw.fetchCalls)
	}
	// Still returns the display order.
	if out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("out = %v", out)
	}
}

func TestMovePartialFailureStillReconciles(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2), cat("c", 3)}
	gw := &fakeGateway{
		failIDs: map[string]bool{"c": true},
		fetch:   []model.Category{cat("a", 3), cat("b", 1), cat("c", 3)},
	}
	e := NewEngine(gw)

	fresh, err := e.Move(context.Background(), model.KindDrinks, cats, 0, 2)
	if err == nil {
		t.Fatalf("expected error from failed write")
	}
	if ae, ok := api.AsError(err); !ok || ae.Kind != api.FailureServer {
		t.Fatalf("err = %v, want server failure", err)
	}
	// Successful writes are not rolled back.
	if gw.writes["b"] != 1 || gw.writes["a"] != 3 {
		t.Fatalf("surviving writes = %v", gw.writes)
	}
	// The caller still gets the service's actual state to render.
	if fresh == nil {
		t.Fatalf("no reconciled list returned")
	}
	if gw.fetchCalls != 1 {
		t.Fatalf("fetch calls = %d, want 1", gw.fetchCalls)
	}
}

func TestMoveReportsWriteErrorWhenFetchAlsoFails(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2)}
	gw := &fakeGateway{
		failIDs:  map[string]bool{"a": true, "b": true},
		fetchErr: &api.Error{Kind: api.FailureNetwork, Message: "Network error. Please check your connection."},
	}
	e := NewEngine(gw)

	fresh, err := e.Move(context.Background(), model.KindFoods, cats, 0, 1)
	if fresh != nil {
		t.Fatalf("fresh = %v, want nil", fresh)
	}
	ae, ok := api.AsError(err)
	if !ok || ae.Kind != api.FailureServer {
		t.Fatalf("err = %v, want the write failure, not the fetch failure", err)
	}
}

func TestMoveFetchFailureAfterSuccessfulWrites(t *testing.T) {
	cats := []model.Category{cat("a", 1), cat("b", 2)}
	gw := &fakeGateway{
		fetchErr: &api.Error{Kind: api.FailureNetwork, Message: "Network error. Please check your connection."},
	}
	e := NewEngine(gw)

	fresh, err := e.Move(context.Background(), model.KindFoods, cats, 0, 1)
	if fresh != nil {
		t.Fatalf("fresh = %v, want nil", fresh)
	}
	if ae, ok := api.AsError(err); !ok || ae.Kind != api.FailureNetwork {
		t.Fatalf("err = %v, want network failure", err)
	}
}
