package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	NoopHTTPHooks

	mu    sync.Mutex
	hits  int
	built []string
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnBuildComplete(_ context.Context, title string, _ int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.built = append(h.built, title)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Errorf("Pipeline() = %T", Pipeline())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T", HTTP())
	}

	ctx := context.Background()
	Pipeline().OnBuildComplete(ctx, "q-net", 5, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "artifact", 1024)
	HTTP().OnResponse(ctx, "POST", "/v1/render", 200, time.Millisecond)
}

func TestSetHooks(t *testing.T) {
	t.Cleanup(Reset)
	h := &countingHooks{}

	tests := []struct {
		name  string
		set   func()
		check func() bool
	}{
		{"pipeline", func() { SetPipelineHooks(h) }, func() bool { return Pipeline() == PipelineHooks(h) }},
		{"cache", func() { SetCacheHooks(h) }, func() bool { return Cache() == CacheHooks(h) }},
		{"http", func() { SetHTTPHooks(h) }, func() bool { return HTTP() == HTTPHooks(h) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set()
			if !tt.check() {
				t.Error("hooks not installed")
			}
		})
	}

	ctx := context.Background()
	Pipeline().OnBuildComplete(ctx, "autoencoder", 5, 0, nil)
	Cache().OnCacheHit(ctx, "artifact")
	if h.hits != 1 || len(h.built) != 1 || h.built[0] != "autoencoder" {
		t.Errorf("hits = %d, built = %v", h.hits, h.built)
	}

	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset did not restore no-op cache hooks")
	}
}

func TestSetNilIsIgnored(t *testing.T) {
	t.Cleanup(Reset)
	h := &countingHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)
	if Cache() != CacheHooks(h) {
		t.Error("SetCacheHooks(nil) replaced the installed hooks")
	}
}

func TestConcurrentSetAndRead(t *testing.T) {
	t.Cleanup(Reset)
	h := &countingHooks{}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetPipelineHooks(h)
				SetCacheHooks(h)
			}
			Cache().OnCacheHit(context.Background(), "artifact")
		}()
	}
	wg.Wait()

	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) {
		t.Error("concurrent Set lost an update")
	}
}
