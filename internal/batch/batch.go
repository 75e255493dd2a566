// Package batch checks many graph documents concurrently.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ingest"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ui"
)

// Result holds the outcome of one check.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Stats   graph.Stats
	Elapsed time.Duration
}

// Task loads and validates one graph.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (graph.Graph, error)
}

// FileTasks returns one task per path. The format follows the extension.
func FileTasks(paths []string) []Task {
	tasks := make([]Task, len(paths))
	for i, p := range paths {
		tasks[i] = Task{Name: p, Fn: func(ctx context.Context) (graph.Graph, error) {
			return loadFile(ctx, p)
		}}
	}
	return tasks
}

func loadFile(ctx context.Context, path string) (graph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return graph.Graph{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Graph{}, err
	}
	return ingest.Parse(data, ingest.FormatFromPath(path))
}

// Run executes tasks with at most concurrency in flight and returns results
// in submission order. Progress lines go to w when it is non-nil. A failing
// task never cancels the others; cancelling ctx does.
func Run(ctx context.Context, tasks []Task, concurrency int, w io.Writer) []Result {
	if concurrency < 1 {
		concurrency = 4
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			start := time.Now()
			gr, err := task.Fn(gctx)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = Result{Name: task.Name, Err: err, Elapsed: elapsed}
				if w != nil {
					fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(false), task.Name, ui.Bad.Sprintf("(%v)", err))
				}
				return nil
			}
			st := gr.Stats()
			results[i] = Result{Name: task.Name, OK: true, Stats: st, Elapsed: elapsed}
			if w != nil {
				fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(true), task.Name,
					ui.Subtle.Sprintf("%d nodes, %d links", st.Nodes, st.Links))
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
