package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/onyx-dot-app/agent-timeline/packet"
)

// DefaultMaxSubagentDepth bounds how many levels of nested sub-agent runs are
// expanded into sub-timelines. Buffers nested at or beyond the bound fold to
// an empty sub-timeline rather than erroring.
const DefaultMaxSubagentDepth = 3

type (
	// Builder folds packets into stream items. A Builder carries only
	// configuration and is safe for concurrent use; all state lives in the
	// item slices passed through Fold.
	Builder struct {
		maxSubagentDepth int
	}

	// Option customizes a Builder.
	Option func(*Builder)
)

// WithMaxSubagentDepth overrides the sub-agent expansion bound. Values below
// zero are ignored; zero disables sub-agent expansion entirely.
func WithMaxSubagentDepth(n int) Option {
	return func(b *Builder) {
		if n >= 0 {
			b.maxSubagentDepth = n
		}
	}
}

// New constructs a Builder with DefaultMaxSubagentDepth unless overridden.
func New(opts ...Option) *Builder {
	b := &Builder{maxSubagentDepth: DefaultMaxSubagentDepth}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build left-folds a full packet log into a timeline, starting from the empty
// timeline at depth zero. Replaying the same log always yields a structurally
// identical timeline, and Build(log) equals folding the log's packets one at
// a time through Fold, which is what incremental consumers do.
func (b *Builder) Build(pkts []packet.Packet) []Item {
	var items []Item
	for _, p := range pkts {
		items = b.Fold(items, p, 0)
	}
	return items
}

// BuildRaw parses and folds a raw packet log in one step.
func (b *Builder) BuildRaw(raws []json.RawMessage) []Item {
	return b.Build(packet.ParseAll(raws))
}

// Fold applies one packet to the timeline and returns the next timeline. The
// input slice is never mutated. depth is the current sub-agent nesting level;
// top-level callers pass zero.
//
// Per-kind behavior: text and thinking chunks coalesce into the tail item of
// the same type, tool-call packets upsert merged per-call state (routed to
// the todo list state when flagged), and every remaining kind leaves the
// timeline unchanged; those packets carry run-level data consumed by the
// session layer, not steps.
func (b *Builder) Fold(items []Item, p packet.Packet, depth int) []Item {
	switch p := p.(type) {
	case packet.TextChunk:
		return appendChunk(items, ItemTypeText, p.Text, p.TurnID)
	case packet.ThinkingChunk:
		return appendChunk(items, ItemTypeThinking, p.Text, p.TurnID)
	case packet.ToolCallStart:
		if p.IsTodo {
			return upsertTodoList(items, p.ToolCallID, todoListPatch{
				turn:     p.TurnID,
				todos:    p.Todos,
				todosSet: p.Todos != nil,
			})
		}
		return upsertToolCall(items, p.ToolCallID, toolCallPatch{
			turn:        p.TurnID,
			kind:        p.Kind,
			title:       p.Title,
			description: p.Description,
			command:     p.Command,
		})
	case packet.ToolCallProgress:
		if p.IsTodo {
			patch := todoListPatch{
				turn:     p.TurnID,
				todos:    p.Todos,
				todosSet: p.Todos != nil,
			}
			if p.Status != "" {
				open := !p.Status.Terminal()
				patch.isOpen = &open
			}
			return upsertTodoList(items, p.ToolCallID, patch)
		}
		patch := toolCallPatch{
			turn:              p.TurnID,
			kind:              p.Kind,
			title:             p.Title,
			description:       p.Description,
			command:           p.Command,
			status:            p.Status,
			rawOutput:         p.RawOutput,
			isNewFile:         p.IsNewFile,
			oldContent:        p.OldContent,
			newContent:        p.NewContent,
			subagentType:      p.SubagentType,
			subagentSessionID: p.SubagentSessionID,
		}
		if len(p.SubagentPacketData) > 0 {
			patch.subagentItems = b.ExpandSubagent(p.SubagentPacketData, depth)
			patch.subagentItemsSet = true
		}
		return upsertToolCall(items, p.ToolCallID, patch)
	case packet.SubagentPacket, packet.PromptResponse, packet.ArtifactCreated,
		packet.Error, packet.SectionEnd, packet.Unknown:
		return items
	default:
		return items
	}
}

// ExpandSubagent folds a nested raw packet buffer into the sub-timeline of
// the owning tool call. Buffers at or beyond the builder's depth bound yield
// nil regardless of content; the bound is the sole termination condition
// because delegation forms a tree, never a graph.
func (b *Builder) ExpandSubagent(nested []json.RawMessage, depth int) []Item {
	if depth >= b.maxSubagentDepth {
		return nil
	}
	var items []Item
	for _, raw := range nested {
		items = b.Fold(items, packet.Parse(raw), depth+1)
	}
	return items
}

// appendChunk coalesces a text or thinking fragment into the tail item when
// the tail has the same type, and opens a new item otherwise. Empty fragments
// are no-ops. Item IDs derive from the timeline position at creation, which
// keeps them stable across incremental folding and full replays.
func appendChunk(items []Item, t ItemType, text, turn string) []Item {
	if text == "" {
		return items
	}
	if n := len(items); n > 0 {
		switch last := items[n-1].(type) {
		case TextItem:
			if t == ItemTypeText {
				out := make([]Item, n)
				copy(out, items)
				last.Text += text
				out[n-1] = last
				return out
			}
		case ThinkingItem:
			if t == ItemTypeThinking {
				out := make([]Item, n)
				copy(out, items)
				last.Text += text
				out[n-1] = last
				return out
			}
		}
	}
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	id := fmt.Sprintf("%s-%d", t, len(items))
	if t == ItemTypeText {
		return append(out, TextItem{Type: ItemTypeText, ID: id, Turn: turn, Text: text})
	}
	return append(out, ThinkingItem{Type: ItemTypeThinking, ID: id, Turn: turn, Text: text})
}
