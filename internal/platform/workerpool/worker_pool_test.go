// internal/platform/workerpool/worker_pool_test.go
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsEveryTaskOnce(t *testing.T) {
	pool := New(Config{Workers: 3})

	var mu sync.Mutex
	seen := make(map[string]int)
	tasks := make([]Task, 0, 25)
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("task-%d", i)
		tasks = append(tasks, TaskFunc{TaskName: name, Fn: func(ctx context.Context) error {
			mu.Lock()
			seen[name]++
			mu.Unlock()
			return nil
		}})
	}

	results := pool.Run(context.Background(), tasks)

	require.Len(t, results, 25)
	assert.Len(t, seen, 25)
	for name, n := range seen {
		assert.Equal(t, 1, n, name)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	pool := New(Config{Workers: 2})

	var current, peak int32
	tasks := make([]Task, 0, 10)
	for i := 0; i < 10; i++ {
		tasks = append(tasks, TaskFunc{TaskName: fmt.Sprint(i), Fn: func(ctx context.Context) error {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return nil
		}})
	}

	pool.Run(context.Background(), tasks)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPool_CanceledContextStillReturnsAllResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := make([]Task, 0, 8)
	for i := 0; i < 8; i++ {
		tasks = append(tasks, TaskFunc{TaskName: fmt.Sprint(i), Fn: func(ctx context.Context) error {
			return ctx.Err()
		}})
	}

	results := New(Config{Workers: 2}).Run(ctx, tasks)

	require.Len(t, results, 8)
	for _, r := range results {
		assert.ErrorIs(t, r.Error, context.Canceled)
	}
}

func TestPool_RecoversPanics(t *testing.T) {
	tasks := []Task{
		TaskFunc{TaskName: "boom", Fn: func(ctx context.Context) error { panic("kaboom") }},
		TaskFunc{TaskName: "fine", Fn: func(ctx context.Context) error { return nil }},
		TaskFunc{TaskName: "err", Fn: func(ctx context.Context) error { return errors.New("nope") }},
	}

	results := New(Config{Workers: 1}).Run(context.Background(), tasks)
	require.Len(t, results, 3)

	byName := make(map[string]error)
	for _, r := range results {
		byName[r.Task.Name()] = r.Error
	}
	assert.ErrorContains(t, byName["boom"], "kaboom")
	assert.NoError(t, byName["fine"])
	assert.EqualError(t, byName["err"], "nope")
}

func TestPool_Empty(t *testing.T) {
	assert.Empty(t, New(Config{}).Run(context.Background(), nil))
	assert.Equal(t, 4, New(Config{}).Workers())
}

func TestPool_DispatchesInSubmissionOrder(t *testing.T) {
	pool := New(Config{Workers: 1})

	var order []string
	tasks := make([]Task, 0, 5)
	for _, name := range []string{"www", "mail", "api", "dev", "admin"} {
		tasks = append(tasks, TaskFunc{TaskName: name, Fn: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}})
	}

	results := pool.Run(context.Background(), tasks)

	require.Len(t, results, 5)
	assert.Equal(t, []string{"www", "mail", "api", "dev", "admin"}, order)
}
