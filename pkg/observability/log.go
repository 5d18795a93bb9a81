package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports engine and cache events as debug log lines.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLoad(_ context.Context, source string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "source", source, "err", err)
		return
	}
	h.Logger.Debug("loaded graph", "source", source, "nodes", nodes, "duration", d)
}

func (h *LogHooks) OnRank(_ context.Context, requested, produced int, d time.Duration) {
	h.Logger.Debug("ranked paths", "requested", requested, "produced", produced, "duration", d)
}

func (h *LogHooks) OnCover(_ context.Context, decisions, covered int, err error) {
	h.Logger.Debug("applied coverage", "decisions", decisions, "covered", covered, "err", err)
}

func (h *LogHooks) OnRender(_ context.Context, format string, d time.Duration, err error) {
	h.Logger.Debug("rendered", "format", format, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ EngineHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
)
