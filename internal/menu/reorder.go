// Package menu converts an operator's move gesture over a category list into
// a persisted total order, despite the service only offering single-item
// order updates.
package menu

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kale-admin/internal/model"
)

// OrderUpdate is one category's new order value.
type OrderUpdate struct {
	ID    string
	Order int
}

// PlanMove computes the order updates needed to move the element at src to
// dst within one kind's category list.
//
// The input list is sorted ascending by order first (stable, so duplicate or
// missing order values keep their fetch order — that is the display order the
// operator dragged within). The whole sequence is then re-stamped densely
// 1..N; only categories whose stored order actually changes are returned.
// Re-stamping everything instead of shifting neighbors trades extra writes
// for an always-clean ordering, and repairs pre-existing duplicates and gaps
// as a side effect.
//
// A move with src == dst, an out-of-range index, or a list of length <= 1
// plans nothing, so no network call is issued for it.
func PlanMove(cats []model.Category, src, dst int) []OrderUpdate {
	n := len(cats)
	if n <= 1 || src == dst || src < 0 || dst < 0 || src >= n || dst >= n {
		return nil
	}

	// Work on a copy so the caller's slice keeps its order.
	cur := append([]model.Category{}, cats...)
	model.SortCategoriesByOrder(cur)

	moved := cur[src]
	rest := append(append([]model.Category{}, cur[:src]...), cur[src+1:]...)
	final := make([]model.Category, 0, n)
	final = append(final, rest[:dst]...)
	final = append(final, moved)
	final = append(final, rest[dst:]...)

	var updates []OrderUpdate
	for i, c := range final {
		want := i + 1
		if c.Order != want {
			updates = append(updates, OrderUpdate{ID: c.ID, Order: want})
		}
	}
	return updates
}

// Gateway is the slice of the API client the engine needs.
type Gateway interface {
	UpdateCategoryOrder(ctx context.Context, id string, order int) error
	CategoriesByKind(ctx context.Context, kind model.MenuKind) ([]model.Category, error)
}

type Engine struct {
	gw Gateway
}

func NewEngine(gw Gateway) *Engine { return &Engine{gw: gw} }

// Move executes a planned move: one order update per changed category, issued
// concurrently, succeeding only if every write succeeds. There is no
// compensating rollback — writes that already landed stay landed. Whether or
// not the fan-out succeeded, Move re-fetches the kind's list so the caller
// renders the service's actual state rather than the client's computation;
// that re-read is the sole recovery path after a partial failure.
func (e *Engine) Move(ctx context.Context, kind model.MenuKind, cats []model.Category, src, dst int) ([]model.Category, error) {
	updates := PlanMove(cats, src, dst)
	if len(updates) == 0 {
		out := append([]model.Category{}, cats...)
		model.SortCategoriesByOrder(out)
		return out, nil
	}

	// Plain errgroup, not WithContext: one failed write must not cancel the
	// others mid-flight. g.Wait reports the first failure.
	var g errgroup.Group
	for _, u := range updates {
		u := u
		g.Go(func() error {
			return e.gw.UpdateCategoryOrder(ctx, u.ID, u.Order)
		})
	}
	writeErr := g.Wait()

	// Reconciling re-read, on success and on partial failure alike.
	fresh, fetchErr := e.gw.CategoriesByKind(ctx, kind)
	if writeErr != nil {
		if fetchErr != nil {
			return nil, writeErr
		}
		model.SortCategoriesByOrder(fresh)
		return fresh, writeErr
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	model.SortCategoriesByOrder(fresh)
	return fresh, nil
}
