package consolesdk

import (
	"context"
	"sync"
)

// GridFetcher loads one page of rows. The SDK client's ReadUsers satisfies
// this signature.
type GridFetcher func(ctx context.Context, pageSize, page int, sortModel []SortItem) (UserPage, error)

// GridState is a snapshot of the controller's observable state.
type GridState struct {
	Page      int
	PageSize  int
	SortModel []SortItem
	Loading   bool
	Rows      []User
	Count     int64
}

// Grid owns the server-side pagination state of the users screen. Every
// change to page, page size or sort model issues exactly one fetch; results
// are replaced wholesale, never merged. Each fetch carries a sequence token,
// so a slow response that has been superseded, or one arriving after Close,
// is discarded without touching state.
type Grid struct {
	mu    sync.Mutex
	fetch GridFetcher

	page      int
	pageSize  int
	sortModel []SortItem
	loading   bool
	rows      []User
	count     int64

	seq    uint64
	closed bool

	// OnUpdate fires after a fetch lands, OnError after one fails. Both are
	// optional and run outside the controller's lock.
	OnUpdate func(GridState)
	OnError  func(error)
}

// NewGrid creates a controller in its initial state: first page, five rows,
// sorted by id ascending. No fetch happens until Refresh or a setter is
// called.
func NewGrid(fetch GridFetcher) *Grid {
	return &Grid{
		fetch:     fetch,
		page:      0,
		pageSize:  5,
		sortModel: []SortItem{{Field: "id", Sort: "asc"}},
	}
}

// State returns a snapshot of the current grid state.
func (g *Grid) State() GridState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

// SetPage moves to a page and fetches it.
func (g *Grid) SetPage(ctx context.Context, page int) {
	g.mu.Lock()
	g.page = page
	g.refetchLocked(ctx)
}

// SetPageSize changes the page size and fetches.
func (g *Grid) SetPageSize(ctx context.Context, pageSize int) {
	g.mu.Lock()
	g.pageSize = pageSize
	g.refetchLocked(ctx)
}

// SetSortModel replaces the sort model and fetches.
func (g *Grid) SetSortModel(ctx context.Context, sortModel []SortItem) {
	g.mu.Lock()
	g.sortModel = sortModel
	g.refetchLocked(ctx)
}

// Refresh re-fetches the current page, e.g. after a row mutation.
func (g *Grid) Refresh(ctx context.Context) {
	g.mu.Lock()
	g.refetchLocked(ctx)
}

// Close tears the controller down. Responses still in flight become no-ops.
func (g *Grid) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}

// refetchLocked issues the fetch for the current parameters. It is entered
// holding the lock and releases it around the fetch call.
func (g *Grid) refetchLocked(ctx context.Context) {
	if g.closed {
		g.mu.Unlock()
		return
	}

	g.seq++
	token := g.seq
	g.loading = true
	pageSize, page := g.pageSize, g.page
	sortModel := append([]SortItem(nil), g.sortModel...)
	g.mu.Unlock()

	result, err := g.fetch(ctx, pageSize, page, sortModel)

	g.mu.Lock()
	if g.closed || token != g.seq {
		// Superseded or torn down; drop the response.
		g.mu.Unlock()
		return
	}

	if err != nil {
		g.loading = false
		g.mu.Unlock()
		if g.OnError != nil {
			g.OnError(err)
		}
		return
	}

	g.rows = result.Rows
	g.count = result.Count
	g.loading = false
	state := g.stateLocked()
	g.mu.Unlock()

	if g.OnUpdate != nil {
		g.OnUpdate(state)
	}
}

func (g *Grid) stateLocked() GridState {
	return GridState{
		Page:      g.page,
		PageSize:  g.pageSize,
		SortModel: append([]SortItem(nil), g.sortModel...),
		Loading:   g.loading,
		Rows:      append([]User(nil), g.rows...),
		Count:     g.count,
	}
}
