package consolesdk

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingFetcher records every fetch it serves and returns canned pages.
type countingFetcher struct {
	mu    sync.Mutex
	calls []fetchCall
	page  UserPage
	err   error
	gate  chan struct{} // when set, fetches block until the gate closes
}

type fetchCall struct {
	pageSize int
	page     int
	sort     []SortItem
}

func (f *countingFetcher) fetch(_ context.Context, pageSize, page int, sort []SortItem) (UserPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{pageSize: pageSize, page: page, sort: sort})
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	result, err := f.page, f.err
	f.mu.Unlock()
	if err != nil {
		return UserPage{}, err
	}
	return result, nil
}

func (f *countingFetcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *countingFetcher) last() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func TestGridInitialState(t *testing.T) {
	t.Parallel()

	grid := NewGrid((&countingFetcher{}).fetch)
	state := grid.State()

	require.Equal(t, 0, state.Page)
	require.Equal(t, 5, state.PageSize)
	require.Equal(t, []SortItem{{Field: "id", Sort: "asc"}}, state.SortModel)
	require.False(t, state.Loading)
	require.Empty(t, state.Rows)
}

func TestGridEachChangeIssuesExactlyOneFetch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &countingFetcher{page: UserPage{Count: 2, Rows: []User{{ID: 1}}}}
	grid := NewGrid(fetcher.fetch)

	grid.SetPage(ctx, 1)
	require.Equal(t, 1, fetcher.count())
	require.Equal(t, 1, fetcher.last().page)
	require.Equal(t, 5, fetcher.last().pageSize)

	grid.SetPageSize(ctx, 10)
	require.Equal(t, 2, fetcher.count())
	require.Equal(t, 10, fetcher.last().pageSize)

	grid.SetSortModel(ctx, []SortItem{{Field: "email", Sort: "desc"}})
	require.Equal(t, 3, fetcher.count())
	require.Equal(t, []SortItem{{Field: "email", Sort: "desc"}}, fetcher.last().sort)

	grid.Refresh(ctx)
	require.Equal(t, 4, fetcher.count())
}

func TestGridLoadingTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &countingFetcher{page: UserPage{Count: 1, Rows: []User{{ID: 1}}}}
	grid := NewGrid(fetcher.fetch)

	var sawState GridState
	grid.OnUpdate = func(s GridState) { sawState = s }

	grid.Refresh(ctx)

	require.False(t, grid.State().Loading)
	require.False(t, sawState.Loading)
	require.EqualValues(t, 1, sawState.Count)
	require.Len(t, sawState.Rows, 1)
}

func TestGridPaginationWindow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	adminRow := User{ID: 1, Username: "admin"}
	userRow := User{ID: 2, Username: "user"}
	fetcher := &countingFetcher{}
	grid := NewGrid(fetcher.fetch)
	grid.SetPageSize(ctx, 1)

	// Row 1 of 2.
	fetcher.page = UserPage{Count: 2, Rows: []User{adminRow}}
	grid.Refresh(ctx)
	state := grid.State()
	require.EqualValues(t, 2, state.Count)
	require.Equal(t, []User{adminRow}, state.Rows)

	// Row 2 of 2.
	fetcher.page = UserPage{Count: 2, Rows: []User{userRow}}
	grid.SetPage(ctx, 1)
	state = grid.State()
	require.EqualValues(t, 2, state.Count)
	require.Equal(t, []User{userRow}, state.Rows)
	require.Equal(t, 1, fetcher.last().page)
}

func TestGridDiscardsResponsesAfterClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gate := make(chan struct{})
	fetcher := &countingFetcher{
		page: UserPage{Count: 9, Rows: []User{{ID: 9}}},
		gate: gate,
	}
	grid := NewGrid(fetcher.fetch)

	updates := 0
	grid.OnUpdate = func(GridState) { updates++ }

	done := make(chan struct{})
	go func() {
		grid.Refresh(ctx)
		close(done)
	}()

	// Wait for the fetch to be in flight, then tear down before it lands.
	require.Eventually(t, func() bool { return fetcher.count() == 1 }, timeout, tick)
	grid.Close()
	close(gate)
	<-done

	state := grid.State()
	require.Empty(t, state.Rows)
	require.Zero(t, state.Count)
	require.Zero(t, updates)
}

func TestGridClosedIssuesNoFetches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &countingFetcher{}
	grid := NewGrid(fetcher.fetch)
	grid.Close()

	grid.Refresh(ctx)
	grid.SetPage(ctx, 3)
	require.Zero(t, fetcher.count())
}

func TestGridStaleResponseIsDiscarded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	gate := make(chan struct{})
	slow := &countingFetcher{
		page: UserPage{Count: 1, Rows: []User{{ID: 1, Username: "stale"}}},
		gate: gate,
	}
	grid := NewGrid(slow.fetch)

	done := make(chan struct{})
	go func() {
		grid.SetPage(ctx, 0)
		close(done)
	}()
	require.Eventually(t, func() bool { return slow.count() == 1 }, timeout, tick)

	// A newer request supersedes the one stuck in flight.
	slow.mu.Lock()
	slow.gate = nil
	slow.page = UserPage{Count: 1, Rows: []User{{ID: 2, Username: "fresh"}}}
	slow.mu.Unlock()
	grid.SetPage(ctx, 1)

	// Now let the stale response land; it must not overwrite the fresh one.
	close(gate)
	<-done

	state := grid.State()
	require.Equal(t, "fresh", state.Rows[0].Username)
	require.False(t, state.Loading)
}

func TestGridSurfacesFetchErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fetcher := &countingFetcher{err: &APIError{StatusCode: 500, Err: "Internal Server Error", Message: "Something went wrong"}}
	grid := NewGrid(fetcher.fetch)

	var gotErr error
	grid.OnError = func(err error) { gotErr = err }

	grid.Refresh(ctx)

	require.Error(t, gotErr)
	require.True(t, IsStatus(gotErr, 500))
	require.False(t, grid.State().Loading)
}
