package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every hook event as a debug log line.
// It implements both PackHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnLayout(_ context.Context, stickies int, d time.Duration) {
	h.logger.Debug("layout computed", "stickies", stickies, "took", d)
}

func (h *LogHooks) OnCreateStart(_ context.Context, stickies int) {
	h.logger.Debug("creating stickies", "count", stickies)
}

func (h *LogHooks) OnCreateComplete(_ context.Context, stickies int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("creation failed", "count", stickies, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("stickies created", "count", stickies, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("request failed", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ PackHooks = (*LogHooks)(nil)
	_ HTTPHooks = (*LogHooks)(nil)
)
