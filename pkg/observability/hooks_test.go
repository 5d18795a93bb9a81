package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recordingHooks struct {
	ranks int
}

func (*recordingHooks) OnLoad(context.Context, string, int, time.Duration, error) {}
func (r *recordingHooks) OnRank(context.Context, int, int, time.Duration)         { r.ranks++ }
func (*recordingHooks) OnCover(context.Context, int, int, error)                  {}
func (*recordingHooks) OnRender(context.Context, string, time.Duration, error)    {}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	e := NoopEngineHooks{}
	e.OnLoad(ctx, "graph.json", 35, time.Millisecond, nil)
	e.OnRank(ctx, 3, 2, time.Millisecond)
	e.OnCover(ctx, 4, 2, nil)
	e.OnRender(ctx, "svg", time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "rank")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Engine() should return NoopEngineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	rec := &recordingHooks{}
	SetEngineHooks(rec)
	Engine().OnRank(context.Background(), 1, 1, 0)
	if rec.ranks != 1 {
		t.Errorf("registered hooks received %d events, want 1", rec.ranks)
	}

	SetEngineHooks(nil)
	if Engine() != EngineHooks(rec) {
		t.Error("SetEngineHooks(nil) should keep the current hooks")
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() should restore NoopEngineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLoad(ctx, "graph.json", 35, time.Millisecond, nil)
	h.OnLoad(ctx, "bad.json", 0, 0, errors.New("boom"))
	h.OnRank(ctx, 3, 2, time.Millisecond)
	h.OnCacheHit(ctx, "artifact")

	out := buf.String()
	for _, want := range []string{"loaded graph", "nodes=35", "load failed", "ranked paths", "produced=2", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksRespectLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnRank(context.Background(), 1, 1, 0)
	if buf.Len() != 0 {
		t.Errorf("debug events written at info level: %q", buf.String())
	}
}
