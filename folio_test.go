package folio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-folio"
	"github.com/goliatone/go-folio/internal/di"
	"github.com/goliatone/go-folio/internal/render"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	target := filepath.Join(root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newModule(t *testing.T) (*folio.Module, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "content/blogs/first.md", "---\ntitle: First\ndate: 2024-01-02\ntags: [go]\n---\n# First\n\nBody.\n")
	writeFile(t, root, "content/blogs/second.md", "---\ntitle: Second\ndate: 2024-02-03\nauthor: Ada\n---\nSecond body.\n")
	writeFile(t, root, "data/blogs.json", `{"blogs":[
		{"slug":"first","title":"First","mdFile":"first.md","date":"2024-01-02","published":true},
		{"slug":"second","title":"Second","mdFile":"second.md","date":"2024-02-03","published":true}
	]}`)

	cfg := folio.DefaultConfig()
	cfg.Site.Root = root
	cfg.Server.SessionSecret = "0123456789abcdef0123456789abcdef"

	var logs bytes.Buffer
	module, err := folio.New(cfg, di.WithLogWriter(&logs), di.WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module, root
}

func TestModuleBuildIndexThenRender(t *testing.T) {
	module, root := newModule(t)
	ctx := context.Background()

	result, err := module.BuildIndex(ctx, folio.BuildIndexCommand{Strict: true})
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if result == nil || len(result.Records) != 2 || !result.Written {
		t.Fatalf("unexpected result %+v", result)
	}

	data, err := os.ReadFile(filepath.Join(root, "public", "data", "blog-index.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var records []folio.DocumentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("decode index: %v", err)
	}
	if records[0].Slug != "second" || records[1].Slug != "first" {
		t.Fatalf("expected newest first, got %s, %s", records[0].Slug, records[1].Slug)
	}
	if records[0].Author != "Ada" {
		t.Fatalf("expected author Ada, got %q", records[0].Author)
	}

	list := module.RenderList(ctx)
	if list.State != render.ListStateCards || len(list.Cards) != 2 {
		t.Fatalf("unexpected list view %+v", list)
	}

	doc := module.RenderDocument(ctx, "first")
	if doc.State != render.DocRendered {
		t.Fatalf("expected rendered document, got %+v", doc)
	}

	missing := module.RenderDocument(ctx, "nope")
	if !errors.Is(missing.Err, folio.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", missing.Err)
	}
}

func TestModuleVerifyIndexDetectsDrift(t *testing.T) {
	module, root := newModule(t)
	ctx := context.Background()

	if _, err := module.VerifyIndex(ctx, folio.VerifyIndexCommand{}); err != nil {
		t.Fatalf("expected clean verify, got %v", err)
	}

	writeFile(t, root, "content/blogs/third.md", "---\ntitle: Third\n---\nThird.\n")
	result, err := module.VerifyIndex(ctx, folio.VerifyIndexCommand{})
	if !errors.Is(err, folio.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
	if result == nil || result.Integrity == nil || len(result.Integrity.OnlyInIndex) != 1 {
		t.Fatalf("expected one drift entry, got %+v", result)
	}
	if _, err := os.Stat(filepath.Join(root, "public", "data", "blog-index.json")); !os.IsNotExist(err) {
		t.Fatalf("verify must not write the index, stat err %v", err)
	}
}

func TestModuleSubscribeDispatchesBuild(t *testing.T) {
	module, root := newModule(t)

	sub, err := module.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	t.Cleanup(sub.Close)

	var got *folio.BuildResult
	err = dispatcher.Dispatch(context.Background(), folio.BuildIndexCommand{
		ResultCallback: func(r *folio.BuildResult) { got = r },
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got == nil || len(got.Records) != 2 {
		t.Fatalf("expected dispatched build result, got %+v", got)
	}
	if _, err := os.Stat(filepath.Join(root, "public", "data", "blog-index.json")); err != nil {
		t.Fatalf("expected index written: %v", err)
	}
}

func TestModuleWatchRebuildsOnChange(t *testing.T) {
	module, root := newModule(t)
	module.Container().Config.Build.Watch.Debounce = folio.Duration(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- module.Watch(ctx, folio.BuildIndexCommand{Policy: folio.SkipAndReport})
	}()

	index := filepath.Join(root, "public", "data", "blog-index.json")
	deadline := time.Now().Add(5 * time.Second)
	for {
		writeFile(t, root, "content/blogs/first.md", "---\ntitle: First edited\n---\nEdited.\n")
		time.Sleep(100 * time.Millisecond)
		if _, err := os.Stat(index); err == nil {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("index was not rebuilt by the watcher")
		}
	}

	cancel()
	if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch: %v", err)
	}
}
