package preview

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekor-lib/sampler/internal/engine"
	"github.com/mekor-lib/sampler/internal/examples"
	"github.com/mekor-lib/sampler/internal/testutil"
	"github.com/mekor-lib/sampler/pkg/component"
)

type fakeGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context) (*engine.Result, error) {
	g.calls.Add(1)
	if g.err != nil {
		return nil, g.err
	}
	return &engine.Result{}, nil
}

func newTestServer(t *testing.T, out string, gen Generator) *Server {
	t.Helper()
	return NewServer(Config{
		Generator: gen,
		SourceDir: t.TempDir(),
		OutputDir: out,
		Suffix:    ".component.ts",
		Debounce:  10 * time.Millisecond,
		Logger:    testutil.NewTestLogger(t),
	})
}

func TestNotifier(t *testing.T) {
	n := NewNotifier()
	ch := n.Subscribe()
	assert.Equal(t, 1, n.Len())

	n.Broadcast()
	n.Broadcast() // coalesced
	select {
	case <-ch:
	default:
		t.Fatal("expected a ping")
	}
	select {
	case <-ch:
		t.Fatal("expected pings to coalesce")
	default:
	}

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())
}

func TestInjectReload(t *testing.T) {
	page := examples.Render("button", &component.Metadata{Selector: "x-b", Inputs: []component.Input{}})
	got := string(InjectReload([]byte(page.HTML)))

	assert.Contains(t, got, "EventSource('/__reload')")
	assert.Less(t, strings.Index(got, "<script>"), strings.Index(got, "</body>"))
	assert.True(t, strings.HasPrefix(got, page.HTML[:strings.Index(page.HTML, "</body>")]))

	assert.True(t, strings.HasSuffix(string(InjectReload([]byte("<p>x</p>"))), "</script>\n"))
}

func TestHandler_Routes(t *testing.T) {
	out := t.TempDir()
	w := examples.NewWriter(out)
	_, err := w.Generate("button", &component.Metadata{Selector: "x-button", Inputs: []component.Input{}})
	require.NoError(t, err)
	_, err = w.Generate("x.spec", component.New())
	require.NoError(t, err)

	h := newTestServer(t, out, &fakeGenerator{}).Handler()

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html", `<a href="/button.html">button</a>`},
		{"/button.html", http.StatusOK, "text/html", "EventSource"},
		{"/x.spec.html", http.StatusOK, "text/html", "<title>x.spec Example</title>"},
		{"/button.js", http.StatusOK, "text/javascript", "bootstrap the Angular component"},
		{"/missing.html", http.StatusNotFound, "", ""},
		{"/button.ts", http.StatusNotFound, "", ""},
		{"/..%2Fsecret.html", http.StatusNotFound, "", ""},
		{"/.hidden.html", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.contentType != "" {
				assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.contains != "" {
				assert.Contains(t, rec.Body.String(), tt.contains)
			}
		})
	}

	// the file on disk is untouched
	data, err := os.ReadFile(filepath.Join(out, "button.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "EventSource")
}

func TestHandler_IndexWithoutOutputDir(t *testing.T) {
	h := newTestServer(t, filepath.Join(t.TempDir(), "missing"), &fakeGenerator{}).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No examples generated yet.")
}

func TestHandler_SSE(t *testing.T) {
	s := newTestServer(t, t.TempDir(), &fakeGenerator{})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/__reload", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data: connected\n", line)
	_, _ = reader.ReadString('\n')

	require.Eventually(t, func() bool { return s.Notifier().Len() == 1 }, time.Second, 5*time.Millisecond)
	_, err = s.Regenerate(context.Background())
	require.NoError(t, err)

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)
}

func TestRegenerate_ErrorDoesNotNotify(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("syntax error")}
	var seen []error
	s := NewServer(Config{
		Generator:  gen,
		OnGenerate: func(_ *engine.Result, err error) { seen = append(seen, err) },
	})
	ch := s.Notifier().Subscribe()

	_, err := s.Regenerate(context.Background())
	require.Error(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, gen.err, seen[0])

	select {
	case <-ch:
		t.Fatal("failed regeneration must not trigger a reload")
	default:
	}
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "button"), 0750))

	var (
		mu    sync.Mutex
		paths []string
	)
	w := NewWatcher(dir, ".component.ts", 50*time.Millisecond, testutil.NewTestLogger(t), func(_ context.Context, path string) {
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	// let the watcher register its directories
	time.Sleep(50 * time.Millisecond)

	target := filepath.Join(dir, "button", "button.component.ts")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(target, []byte(testutil.ButtonSource), 0600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button", "notes.md"), []byte("x"), 0600))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(paths) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(150 * time.Millisecond)
	mu.Lock()
	assert.Len(t, paths, 1)
	assert.Equal(t, target, paths[0])
	mu.Unlock()

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_RunWaitsForInFlightChange(t *testing.T) {
	dir := t.TempDir()

	started := make(chan struct{})
	release := make(chan struct{})
	var (
		once     sync.Once
		finished atomic.Bool
	)
	w := NewWatcher(dir, ".component.ts", 10*time.Millisecond, testutil.NewTestLogger(t), func(context.Context, string) {
		once.Do(func() { close(started) })
		<-release
		finished.Store(true)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.component.ts"), []byte(testutil.ButtonSource), 0600))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("change was not picked up")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("Run returned while a change was being handled")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	assert.NoError(t, <-done)
	assert.True(t, finished.Load())
}

func TestWatcher_MissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), ".component.ts", time.Millisecond, nil, func(context.Context, string) {})
	assert.Error(t, w.Run(context.Background()))
}

func TestServer_RunServesAndRegenerates(t *testing.T) {
	src := testutil.ComponentTree(t)
	out := t.TempDir()

	eng, err := engine.New(engine.Config{
		SourceDir:   src,
		OutputDir:   out,
		SyntaxCheck: true,
		Logger:      testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	_, err = eng.Generate(context.Background())
	require.NoError(t, err)

	regenerated := make(chan struct{}, 4)
	s := NewServer(Config{
		Generator: eng,
		SourceDir: src,
		OutputDir: out,
		Suffix:    eng.Suffix(),
		Debounce:  20 * time.Millisecond,
		Serve:     true,
		Logger:    testutil.NewTestLogger(t),
		OnGenerate: func(_ *engine.Result, err error) {
			if err == nil {
				regenerated <- struct{}{}
			}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr string
	select {
	case addr = <-s.Addr():
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	time.Sleep(50 * time.Millisecond)

	resp, err := http.Get("http://" + addr + "/card.html")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "<mekor-lib-card")

	testutil.WriteFiles(t, src, map[string]string{
		"chip/chip.component.ts": "@Component({selector: 'mekor-lib-chip'})\nexport class Chip {}\n",
	})

	select {
	case <-regenerated:
	case <-time.After(3 * time.Second):
		t.Fatal("no regeneration after change")
	}
	_, err = os.Stat(filepath.Join(out, "chip.html"))
	assert.NoError(t, err)

	cancel()
	assert.NoError(t, <-done)
}
