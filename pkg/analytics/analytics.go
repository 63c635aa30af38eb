// Package analytics reports usage events.
//
// A [Tracker] implements [pack.Emitter]. It stamps every event with a
// per-install distinct id and forwards it to a [Sink] unless the user opted
// out. Sink failures are logged and dropped; they never reach the caller.
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/stickypack/pkg/pack"
)

// Channel is the Redis channel RedisSink publishes to.
const Channel = "stickypack:events"

// Record is one tracked event as delivered to a Sink.
type Record struct {
	Event      pack.Event     `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Time       time.Time      `json:"time"`
	Props      map[string]any `json:"props,omitempty"`
}

// Sink delivers records.
type Sink interface {
	Send(ctx context.Context, r Record) error
	Close() error
}

// Tracker is an opt-out event emitter.
type Tracker struct {
	sink       Sink
	distinctID string
	logger     *log.Logger
	disabled   atomic.Bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithDistinctID sets the id events are attributed to. Without it a random
// UUID is generated.
func WithDistinctID(id string) Option {
	return func(t *Tracker) {
		if id != "" {
			t.distinctID = id
		}
	}
}

// WithLogger sets the logger used for delivery failures.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTracker returns an enabled Tracker sending to sink. A nil sink
// discards every record.
func NewTracker(sink Sink, opts ...Option) *Tracker {
	if sink == nil {
		sink = Noop{}
	}
	t := &Tracker{
		sink:       sink,
		distinctID: uuid.NewString(),
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DistinctID returns the id events are attributed to.
func (t *Tracker) DistinctID() string { return t.distinctID }

// Enabled reports whether events are forwarded.
func (t *Tracker) Enabled() bool { return !t.disabled.Load() }

// Enable opts back in.
func (t *Tracker) Enable() { t.disabled.Store(false) }

// Disable opts out. Events emitted afterwards are dropped.
func (t *Tracker) Disable() { t.disabled.Store(true) }

// Emit forwards the event to the sink when tracking is enabled.
func (t *Tracker) Emit(ctx context.Context, event pack.Event, props map[string]any) {
	if !t.Enabled() {
		return
	}
	r := Record{Event: event, DistinctID: t.distinctID, Time: time.Now().UTC(), Props: props}
	if err := t.sink.Send(ctx, r); err != nil {
		t.logger.Debug("analytics delivery failed", "event", event, "error", err)
	}
}

// Close closes the sink.
func (t *Tracker) Close() error { return t.sink.Close() }

var _ pack.Emitter = (*Tracker)(nil)

// Noop discards records.
type Noop struct{}

func (Noop) Send(context.Context, Record) error { return nil }
func (Noop) Close() error                       { return nil }

// LogSink writes records to a logger at info level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink returns a LogSink. A nil logger uses log.Default().
func NewLogSink(l *log.Logger) *LogSink {
	if l == nil {
		l = log.Default()
	}
	return &LogSink{logger: l.WithPrefix("analytics")}
}

func (s *LogSink) Send(_ context.Context, r Record) error {
	keyvals := []any{"distinct_id", r.DistinctID}
	for k, v := range r.Props {
		keyvals = append(keyvals, k, v)
	}
	s.logger.Info(string(r.Event), keyvals...)
	return nil
}

func (s *LogSink) Close() error { return nil }

// RedisSink publishes records as JSON on Channel.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

// NewRedisSink connects to Redis with opts.
func NewRedisSink(opts *redis.Options) *RedisSink {
	return &RedisSink{rdb: redis.NewClient(opts), channel: Channel}
}

// NewRedisSinkURL is NewRedisSink with a redis:// URL.
func NewRedisSinkURL(url string) (*RedisSink, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisSink(opts), nil
}

func (s *RedisSink) Send(ctx context.Context, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, data).Err()
}

func (s *RedisSink) Close() error { return s.rdb.Close() }
