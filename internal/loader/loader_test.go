package loader

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefresh_ReplacesSnapshot(t *testing.T) {
	var calls atomic.Int32
	c := New("nums", func(ctx context.Context) ([]int, error) {
		n := int(calls.Add(1))
		return []int{n, n * 10}, nil
	})

	if got := c.Items(); len(got) != 0 {
		t.Fatalf("Items before load = %v, want empty", got)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := c.Items(); !slices.Equal(got, []int{2, 20}) {
		t.Errorf("Items = %v, want [2 20] (replaced, not merged)", got)
	}
	if c.LoadedAt().IsZero() {
		t.Error("LoadedAt not set")
	}
}

func TestRefresh_FailureEmptiesAndReports(t *testing.T) {
	boom := errors.New("backend down")
	fail := false
	var reported error
	c := New("pkgs", func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, boom
		}
		return []string{"a"}, nil
	}, WithErrorHandler[string](func(_ string, err error) { reported = err }))

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	fail = true
	if err := c.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Refresh err = %v, want %v", err, boom)
	}
	if got := c.Items(); len(got) != 0 {
		t.Errorf("Items after failure = %v, want empty", got)
	}
	if !errors.Is(reported, boom) || !errors.Is(c.Err(), boom) {
		t.Errorf("reported = %v, Err = %v", reported, c.Err())
	}
}

func TestRefresh_SupersededResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var call atomic.Int32

	c := New("slow", func(ctx context.Context) ([]string, error) {
		if call.Add(1) == 1 {
			close(started)
			<-release // first fetch ignores cancellation and returns late
			return []string{"stale"}, nil
		}
		return []string{"fresh"}, nil
	})

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = c.Refresh(context.Background())
	}()
	<-started

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	close(release)
	wg.Wait()

	if !errors.Is(firstErr, ErrSuperseded) {
		t.Errorf("first Refresh err = %v, want ErrSuperseded", firstErr)
	}
	if got := c.Items(); !slices.Equal(got, []string{"fresh"}) {
		t.Errorf("Items = %v, want [fresh]", got)
	}
}

func TestRefresh_CancelsPreviousFetch(t *testing.T) {
	cancelled := make(chan struct{})
	started := make(chan struct{})
	var call atomic.Int32

	c := New("cancel", func(ctx context.Context) ([]int, error) {
		if call.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return nil, ctx.Err()
		}
		return []int{1}, nil
	})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-started

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("previous fetch was not cancelled")
	}
	if err := <-done; !errors.Is(err, ErrSuperseded) {
		t.Errorf("err = %v, want ErrSuperseded", err)
	}
	if c.Err() != nil {
		t.Errorf("Err = %v, superseded failure must not be applied", c.Err())
	}
}

func TestClose_CancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	c := New("close", func(ctx context.Context) ([]int, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-started
	c.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrSuperseded) {
			t.Errorf("err = %v, want ErrSuperseded", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not cancel the fetch")
	}
	if err := c.Refresh(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Refresh after Close = %v, want ErrClosed", err)
	}
}

func TestOnChange(t *testing.T) {
	c := New("notify", func(ctx context.Context) ([]int, error) { return []int{1}, nil })
	var n atomic.Int32
	c.OnChange(func() { n.Add(1) })
	_ = c.Refresh(context.Background())
	_ = c.Refresh(context.Background())
	if n.Load() != 2 {
		t.Errorf("listener called %d times, want 2", n.Load())
	}
}

func TestLoading(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	c := New("slow", func(ctx context.Context) ([]int, error) {
		close(started)
		<-release
		return []int{1}, nil
	})

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	<-started
	if !c.Loading() {
		t.Error("Loading = false during fetch")
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if c.Loading() {
		t.Error("Loading = true after fetch")
	}
}
