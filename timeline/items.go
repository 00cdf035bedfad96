// Package timeline folds an ordered agent packet log into a renderable
// timeline of steps: assistant text, reasoning, tool calls and todo lists.
//
// The fold is pure and incremental. Packets describing the same logical step
// merge into a single item under last-write-wins field semantics, consecutive
// text and thinking chunks coalesce into one item, and tool calls that
// delegate to nested sub-agent runs carry their recursively folded
// sub-timelines. Tool-call state follows an incremental merge policy; the
// memorytool package deliberately uses a different recompute-from-subset
// policy for the low-cardinality memory action.
//
// Rendering and transport are out of scope: this package only produces the
// data model (flat items and turn groups) consumed by the rendering layer.
package timeline

import "github.com/onyx-dot-app/agent-timeline/packet"

// ItemType discriminates the stream item union.
type ItemType string

const (
	// ItemTypeText is an assistant reply step.
	ItemTypeText ItemType = "text"
	// ItemTypeThinking is an agent reasoning step.
	ItemTypeThinking ItemType = "thinking"
	// ItemTypeToolCall is a tool invocation step.
	ItemTypeToolCall ItemType = "tool_call"
	// ItemTypeTodoList is an agent-managed todo list step.
	ItemTypeTodoList ItemType = "todo_list"
)

type (
	// Item is one step of the folded timeline. Concrete types are TextItem,
	// ThinkingItem, ToolCallItem and TodoListItem. Items are immutable
	// values: the fold replaces an item rather than mutating it, so callers
	// may retain slices returned by Builder methods indefinitely.
	Item interface {
		// ItemID returns the stable identifier of the step. Tool calls and
		// todo lists use the wire ToolCallID; text and thinking items use a
		// deterministic position-derived identifier.
		ItemID() string

		// ItemType returns the discriminator for this variant.
		ItemType() ItemType

		// TurnID returns the turn this step belongs to, as supplied by the
		// backend. Empty when the backend did not attach turn metadata.
		TurnID() string
	}

	// TextItem accumulates consecutive assistant reply chunks. At most one
	// text item is open at the tail of the timeline at any moment; a new
	// text item starts only after a step of another type intervenes.
	TextItem struct {
		// Type is the serialized discriminator, always ItemTypeText.
		Type ItemType `json:"type" yaml:"type"`
		// ID is the position-derived step identifier.
		ID string `json:"id" yaml:"id"`
		// Turn is the externally supplied turn identifier.
		Turn string `json:"turnId,omitempty" yaml:"turnId,omitempty"`
		// Text is the concatenation of all chunks folded so far.
		Text string `json:"text" yaml:"text"`
	}

	// ThinkingItem accumulates consecutive reasoning chunks, with the same
	// coalescing behavior as TextItem.
	ThinkingItem struct {
		// Type is the serialized discriminator, always ItemTypeThinking.
		Type ItemType `json:"type" yaml:"type"`
		// ID is the position-derived step identifier.
		ID string `json:"id" yaml:"id"`
		// Turn is the externally supplied turn identifier.
		Turn string `json:"turnId,omitempty" yaml:"turnId,omitempty"`
		// Text is the concatenation of all chunks folded so far.
		Text string `json:"text" yaml:"text"`
	}

	// ToolCallItem is the merged state of one tool invocation, built up from
	// its start packet and every progress packet that references its ID.
	ToolCallItem struct {
		// Type is the serialized discriminator, always ItemTypeToolCall.
		Type ItemType `json:"type" yaml:"type"`
		// ID is the wire ToolCallID.
		ID string `json:"id" yaml:"id"`
		// Turn is the externally supplied turn identifier.
		Turn string `json:"turnId,omitempty" yaml:"turnId,omitempty"`
		// Kind classifies the tool for rendering.
		Kind packet.ToolKind `json:"kind,omitempty" yaml:"kind,omitempty"`
		// Title is a short human-readable label.
		Title string `json:"title,omitempty" yaml:"title,omitempty"`
		// Description elaborates on what the call does.
		Description string `json:"description,omitempty" yaml:"description,omitempty"`
		// Command is the executed command line for execute-kind tools.
		Command string `json:"command,omitempty" yaml:"command,omitempty"`
		// Status is the call lifecycle state. Terminal values are sticky.
		Status packet.Status `json:"status" yaml:"status"`
		// RawOutput is the captured tool output.
		RawOutput string `json:"rawOutput,omitempty" yaml:"rawOutput,omitempty"`
		// IsNewFile reports whether an edit created the file.
		IsNewFile bool `json:"isNewFile,omitempty" yaml:"isNewFile,omitempty"`
		// OldContent is the pre-edit file content for edit-kind tools.
		OldContent string `json:"oldContent,omitempty" yaml:"oldContent,omitempty"`
		// NewContent is the post-edit file content for edit-kind tools.
		NewContent string `json:"newContent,omitempty" yaml:"newContent,omitempty"`
		// SubagentType names the delegated sub-agent flavor when the call
		// spawned a nested run.
		SubagentType string `json:"subagentType,omitempty" yaml:"subagentType,omitempty"`
		// SubagentSessionID identifies the nested run's session.
		SubagentSessionID string `json:"subagentSessionId,omitempty" yaml:"subagentSessionId,omitempty"`
		// SubagentItems is the recursively folded timeline of the nested
		// run, bounded by the builder's sub-agent depth limit.
		SubagentItems []Item `json:"subagentStreamItems,omitempty" yaml:"subagentStreamItems,omitempty"`
	}

	// TodoListItem is the state of an agent-managed todo list. Lists are
	// replaced wholesale by each packet that carries entries; entries are
	// never merged individually.
	TodoListItem struct {
		// Type is the serialized discriminator, always ItemTypeTodoList.
		Type ItemType `json:"type" yaml:"type"`
		// ID is the wire ToolCallID of the todo tool call.
		ID string `json:"id" yaml:"id"`
		// Turn is the externally supplied turn identifier.
		Turn string `json:"turnId,omitempty" yaml:"turnId,omitempty"`
		// Todos is the current full entry list.
		Todos []packet.TodoEntry `json:"todos" yaml:"todos"`
		// IsOpen reports whether the list is still being worked on. It
		// flips to false when the owning tool call reaches a terminal
		// status.
		IsOpen bool `json:"isOpen" yaml:"isOpen"`
	}
)

// ItemID implements Item.
func (i TextItem) ItemID() string { return i.ID }

// ItemType implements Item.
func (TextItem) ItemType() ItemType { return ItemTypeText }

// TurnID implements Item.
func (i TextItem) TurnID() string { return i.Turn }

// ItemID implements Item.
func (i ThinkingItem) ItemID() string { return i.ID }

// ItemType implements Item.
func (ThinkingItem) ItemType() ItemType { return ItemTypeThinking }

// TurnID implements Item.
func (i ThinkingItem) TurnID() string { return i.Turn }

// ItemID implements Item.
func (i ToolCallItem) ItemID() string { return i.ID }

// ItemType implements Item.
func (ToolCallItem) ItemType() ItemType { return ItemTypeToolCall }

// TurnID implements Item.
func (i ToolCallItem) TurnID() string { return i.Turn }

// ItemID implements Item.
func (i TodoListItem) ItemID() string { return i.ID }

// ItemType implements Item.
func (TodoListItem) ItemType() ItemType { return ItemTypeTodoList }

// TurnID implements Item.
func (i TodoListItem) TurnID() string { return i.Turn }
