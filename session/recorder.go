// Package session maintains per-session timeline state for incrementally
// delivered packet logs. The transport (SSE, WebSocket, log replay) hands
// each newly arrived raw packet to a Recorder, which caches the running fold
// so consumers read the current timeline without replaying the whole log on
// every frame. The cached result is guaranteed to match a from-scratch
// replay; Replay exists so callers and tests can check that equivalence.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/onyx-dot-app/agent-timeline/packet"
	"github.com/onyx-dot-app/agent-timeline/telemetry"
	"github.com/onyx-dot-app/agent-timeline/timeline"
)

type (
	// Recorder consumes one session's packet log and maintains the folded
	// timeline plus run-level data (stop reason, backend error, artifacts)
	// carried by packet kinds that are inert in the fold itself.
	//
	// Thread-safe: the transport may append from its receive goroutine
	// while consumers read.
	Recorder struct {
		mu       sync.Mutex
		builder  *timeline.Builder
		logger   telemetry.Logger
		metrics  telemetry.Metrics
		tracer   telemetry.Tracer
		packets  []packet.Packet
		items    []timeline.Item
		arts     []packet.Artifact
		status   RunStatus
		sections int
	}

	// RunStatus is the run-level outcome derived from prompt_response and
	// error packets.
	RunStatus struct {
		// StopReason explains why the agent stopped, when reported.
		StopReason string
		// Summary is the backend's completion summary, when reported.
		Summary string
		// ErrorMessage is the backend failure message, when one occurred.
		ErrorMessage string
		// Complete reports that the run reached a terminal packet
		// (prompt_response or error).
		Complete bool
	}

	// Option customizes a Recorder.
	Option func(*Recorder)
)

// WithBuilder overrides the timeline builder, e.g. to change the sub-agent
// depth bound.
func WithBuilder(b *timeline.Builder) Option {
	return func(r *Recorder) { r.builder = b }
}

// WithLogger overrides the no-op default logger.
func WithLogger(l telemetry.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// WithMetrics overrides the no-op default metrics recorder.
func WithMetrics(m telemetry.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithTracer overrides the no-op default tracer.
func WithTracer(t telemetry.Tracer) Option {
	return func(r *Recorder) { r.tracer = t }
}

// NewRecorder constructs a Recorder with a default builder and no-op
// telemetry unless overridden.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		builder: timeline.New(),
		logger:  telemetry.NewNoopLogger(),
		metrics: telemetry.NewNoopMetrics(),
		tracer:  telemetry.NewNoopTracer(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Append parses the newly arrived raw records in order and folds them into
// the cached timeline. Undecodable records are counted and logged but never
// fail the append; they stay in the log as Unknown so a later Replay sees
// the exact same input.
func (r *Recorder) Append(ctx context.Context, raws ...json.RawMessage) {
	if len(raws) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, raw := range raws {
		p := packet.Parse(raw)
		r.metrics.IncCounter("timeline.packets", 1, "type", string(p.PacketType()))
		if u, ok := p.(packet.Unknown); ok {
			r.logger.Warn(ctx, "unrecognized packet", "declaredType", u.DeclaredType)
		}
		r.items = r.builder.Fold(r.items, p, 0)
		r.observe(p)
		r.packets = append(r.packets, p)
	}
}

// observe extracts run-level data from packet kinds the fold ignores.
// Caller holds r.mu.
func (r *Recorder) observe(p packet.Packet) {
	switch p := p.(type) {
	case packet.PromptResponse:
		r.status.StopReason = p.StopReason
		r.status.Summary = p.Summary
		r.status.Complete = true
	case packet.Error:
		r.status.ErrorMessage = p.Message
		r.status.Complete = true
	case packet.SectionEnd:
		r.sections++
	case packet.ArtifactCreated:
		r.arts = append(r.arts, p.Artifact)
	}
}

// Items returns the current timeline. The returned slice is a copy; the
// items themselves are immutable values.
func (r *Recorder) Items() []timeline.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]timeline.Item, len(r.items))
	copy(out, r.items)
	return out
}

// Turns returns the current timeline grouped by turn. Both views derive from
// the same fold, so they are always mutually consistent.
func (r *Recorder) Turns() []timeline.TurnGroup {
	r.mu.Lock()
	defer r.mu.Unlock()
	return timeline.GroupByTurn(r.items)
}

// Status returns the run-level outcome observed so far.
func (r *Recorder) Status() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Artifacts returns the artifacts announced so far, in arrival order.
func (r *Recorder) Artifacts() []packet.Artifact {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]packet.Artifact, len(r.arts))
	copy(out, r.arts)
	return out
}

// Sections returns how many section_end packets the log carried.
func (r *Recorder) Sections() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sections
}

// Replay rebuilds the timeline from the full retained packet log, bypassing
// the incremental cache. The result must be structurally identical to
// Items(); the session layer relies on that equivalence and tests assert it.
func (r *Recorder) Replay(ctx context.Context) []timeline.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, span := r.tracer.Start(ctx, "session.replay")
	defer span.End()
	start := time.Now()
	rebuilt := r.builder.Build(r.packets)
	r.metrics.RecordTimer("timeline.replay", time.Since(start))
	span.AddEvent("replayed", "packets", len(r.packets), "items", len(rebuilt))
	return rebuilt
}
