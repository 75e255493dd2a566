package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unknownshopper/teapaparalosteapanecos/internal/graph"
	"github.com/unknownshopper/teapaparalosteapanecos/internal/ingest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"nodes":[{"id":"a"},{"id":"b"}],"links":[{"source":"a","target":"b"}]}`)
	yml := writeFile(t, dir, "good.yaml", "nodes:\n  - id: a\nlinks: []\n")
	dup := writeFile(t, dir, "dup.json", `{"nodes":[{"id":"a"},{"id":"a"}],"links":[]}`)
	missing := filepath.Join(dir, "missing.json")

	var out bytes.Buffer
	results := Run(context.Background(), FileTasks([]string{good, yml, dup, missing}), 2, &out)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	if !results[0].OK || results[0].Stats.Nodes != 2 || results[0].Stats.Links != 1 {
		t.Errorf("good.json: unexpected result %+v", results[0])
	}
	if !results[1].OK || results[1].Stats.Nodes != 1 {
		t.Errorf("good.yaml: unexpected result %+v", results[1])
	}
	if results[2].OK || !errors.Is(results[2].Err, ingest.ErrDuplicateNodeID) {
		t.Errorf("dup.json: expected duplicate id error, got %v", results[2].Err)
	}
	if results[3].OK || !errors.Is(results[3].Err, os.ErrNotExist) {
		t.Errorf("missing.json: expected not-exist error, got %v", results[3].Err)
	}
	if Failed(results) != 2 {
		t.Errorf("expected 2 failures, got %d", Failed(results))
	}
	if !strings.Contains(out.String(), "2 nodes, 1 links") {
		t.Errorf("progress output missing stats:\n%s", out.String())
	}
}

func TestRun_Concurrency(t *testing.T) {
	var maxConcurrent int64
	var current int64

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Fn: func(context.Context) (graph.Graph, error) {
				c := atomic.AddInt64(&current, 1)
				for {
					old := atomic.LoadInt64(&maxConcurrent)
					if c <= old || atomic.CompareAndSwapInt64(&maxConcurrent, old, c) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&current, -1)
				return graph.Empty(), nil
			},
		}
	}

	results := Run(context.Background(), tasks, 2, nil)
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if maxConcurrent > 2 {
		t.Errorf("max concurrent should be <= 2, got %d", maxConcurrent)
	}
}

func TestRun_DefaultConcurrency(t *testing.T) {
	tasks := []Task{{Name: "one", Fn: func(context.Context) (graph.Graph, error) { return graph.Empty(), nil }}}
	results := Run(context.Background(), tasks, 0, nil)
	if len(results) != 1 || !results[0].OK {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	p := writeFile(t, dir, "g.json", `{"nodes":[],"links":[]}`)
	results := Run(ctx, FileTasks([]string{p}), 1, nil)
	if results[0].OK {
		t.Fatal("expected cancelled task to fail")
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}
