// Package packet defines the wire-level records emitted by the agent
// execution backend while a build session runs. Packets arrive over a
// transport owned by the caller (SSE, WebSocket, replayed log files) and are
// normalized here into a closed union of Go types discriminated by the
// "type" field.
//
// Packets describing the same logical unit share a stable correlating
// identifier (ToolCallID for tool calls). The stream is append-only: later
// packets for the same identifier refine earlier ones, they never retract
// them. Consumers fold the packet log into renderable state with the
// timeline package.
package packet

import "encoding/json"

// Type discriminates the packet union. The set is closed: records carrying
// any other value decode to Unknown.
type Type string

const (
	// TypeTextChunk carries an incremental fragment of the assistant's
	// user-facing reply.
	TypeTextChunk Type = "text_chunk"

	// TypeThinkingChunk carries an incremental fragment of the agent's
	// internal reasoning.
	TypeThinkingChunk Type = "thinking_chunk"

	// TypeToolCallStart announces a tool invocation. It carries whatever
	// metadata the backend knows at scheduling time (kind, title, command).
	TypeToolCallStart Type = "tool_call_start"

	// TypeToolCallProgress refines a previously announced tool call:
	// status transitions, captured output, file contents, nested sub-agent
	// packet buffers. Progress packets for an unannounced ToolCallID are
	// valid and imply the missing start.
	TypeToolCallProgress Type = "tool_call_progress"

	// TypeSubagentPacket is a forward-compatibility placeholder for
	// packets addressed to a delegated sub-agent session. Inert in the fold.
	TypeSubagentPacket Type = "subagent_packet"

	// TypePromptResponse reports the terminal outcome of the prompt turn
	// (stop reason, summary).
	TypePromptResponse Type = "prompt_response"

	// TypeArtifactCreated announces an artifact generated by the agent
	// (web app, document, image).
	TypeArtifactCreated Type = "artifact_created"

	// TypeError reports a backend failure. Errors are data, not Go errors:
	// they flip terminal flags on derived state and are surfaced by the
	// session layer.
	TypeError Type = "error"

	// TypeSectionEnd closes the current logical section of the run.
	TypeSectionEnd Type = "section_end"

	// TypeUnknown is the decode result for malformed records and
	// unrecognized discriminators. Unknown packets are inert everywhere.
	TypeUnknown Type = "unknown"
)

// ToolKind classifies a tool call for rendering purposes. The set is open:
// backends may send kinds this package does not name.
type ToolKind string

const (
	// ToolKindExecute marks shell or command execution tools.
	ToolKindExecute ToolKind = "execute"
	// ToolKindRead marks file or resource read tools.
	ToolKindRead ToolKind = "read"
	// ToolKindEdit marks file edit tools; edit calls carry old and new
	// content plus the new-file flag.
	ToolKindEdit ToolKind = "edit"
	// ToolKindSubagent marks tools that delegate to a nested agent run.
	ToolKindSubagent ToolKind = "subagent"
	// ToolKindOther marks everything else.
	ToolKindOther ToolKind = "other"
)

// Status is the lifecycle state of a tool call.
// Transitions: pending -> in_progress -> {completed | failed | cancelled}.
// Terminal values are sticky: once reached, later packets cannot move the
// call back to a non-terminal status.
type Status string

const (
	// StatusPending means the call is announced but not yet running.
	StatusPending Status = "pending"
	// StatusInProgress means the tool is executing.
	StatusInProgress Status = "in_progress"
	// StatusCompleted means the tool finished successfully. Terminal.
	StatusCompleted Status = "completed"
	// StatusFailed means the tool finished with an error. Terminal.
	StatusFailed Status = "failed"
	// StatusCancelled means the tool was interrupted. Terminal.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether s is a sticky end state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// TodoStatus is the lifecycle state of a single todo entry.
type TodoStatus string

const (
	// TodoPending means the entry has not been started.
	TodoPending TodoStatus = "pending"
	// TodoInProgress means the agent is working on the entry.
	TodoInProgress TodoStatus = "in_progress"
	// TodoCompleted means the entry is done.
	TodoCompleted TodoStatus = "completed"
	// TodoCancelled means the entry was abandoned.
	TodoCancelled TodoStatus = "cancelled"
)

// ArtifactKind classifies generated artifacts.
type ArtifactKind string

const (
	// ArtifactWebApp is a previewable web application.
	ArtifactWebApp ArtifactKind = "web_app"
	// ArtifactMarkdown is a markdown document.
	ArtifactMarkdown ArtifactKind = "markdown"
	// ArtifactImage is an image file.
	ArtifactImage ArtifactKind = "image"
	// ArtifactCode is a source file or archive.
	ArtifactCode ArtifactKind = "code"
	// ArtifactOther is any other artifact.
	ArtifactOther ArtifactKind = "other"
)

type (
	// Packet is one variant of the closed packet union. Concrete types are
	// TextChunk, ThinkingChunk, ToolCallStart, ToolCallProgress,
	// SubagentPacket, PromptResponse, ArtifactCreated, Error, SectionEnd
	// and Unknown. Consumers switch exhaustively on the concrete type (or
	// on PacketType) to process a packet.
	Packet interface {
		// PacketType returns the discriminator for this variant.
		PacketType() Type
	}

	// TextChunk is an incremental fragment of assistant reply text.
	// Consecutive chunks concatenate; an empty Text is a no-op.
	TextChunk struct {
		// Text is the fragment to append to the current reply.
		Text string `json:"text"`
		// TurnID associates the resulting step with a turn for grouped
		// rendering. Supplied by the backend, never computed here.
		TurnID string `json:"turnId,omitempty"`
	}

	// ThinkingChunk is an incremental fragment of agent reasoning.
	// Same coalescing behavior as TextChunk.
	ThinkingChunk struct {
		// Text is the reasoning fragment to append.
		Text string `json:"text"`
		// TurnID associates the resulting step with a turn.
		TurnID string `json:"turnId,omitempty"`
	}

	// ToolCallStart announces a tool invocation. ToolCallID is required;
	// records without it decode to Unknown. All other fields are optional
	// and merge into any state already derived for the same call.
	ToolCallStart struct {
		// ToolCallID correlates this packet with later progress packets.
		ToolCallID string `json:"toolCallId"`
		// TurnID associates the call with a turn.
		TurnID string `json:"turnId,omitempty"`
		// Kind classifies the tool for rendering.
		Kind ToolKind `json:"kind,omitempty"`
		// Title is a short human-readable label for the call.
		Title string `json:"title,omitempty"`
		// Description elaborates on what the call does.
		Description string `json:"description,omitempty"`
		// Command is the executed command line for execute-kind tools.
		Command string `json:"command,omitempty"`
		// IsTodo routes the packet to the todo-list state instead of the
		// tool-call state. Todo lists are a specialization of tool
		// progress, not a separate packet kind.
		IsTodo bool `json:"isTodo,omitempty"`
		// Todos is the full todo list when IsTodo is set. Lists replace
		// wholesale; entries are never merged individually.
		Todos []TodoEntry `json:"todos,omitempty"`
	}

	// ToolCallProgress refines the state of a tool call. A progress packet
	// for an unknown ToolCallID implies the missing start. Fields the
	// packet sets overwrite derived state; fields it omits are preserved.
	ToolCallProgress struct {
		// ToolCallID correlates this packet with the call it refines.
		ToolCallID string `json:"toolCallId"`
		// TurnID associates the call with a turn.
		TurnID string `json:"turnId,omitempty"`
		// Kind classifies the tool for rendering.
		Kind ToolKind `json:"kind,omitempty"`
		// Title is a short human-readable label for the call.
		Title string `json:"title,omitempty"`
		// Description elaborates on what the call does.
		Description string `json:"description,omitempty"`
		// Command is the executed command line for execute-kind tools.
		Command string `json:"command,omitempty"`
		// Status is the new lifecycle state, if the packet reports one.
		Status Status `json:"status,omitempty"`
		// RawOutput is captured tool output (stdout, file contents).
		RawOutput string `json:"rawOutput,omitempty"`
		// IsNewFile reports whether an edit created the file. Pointer so
		// that absence is distinguishable from false.
		IsNewFile *bool `json:"isNewFile,omitempty"`
		// OldContent is the pre-edit file content for edit-kind tools.
		OldContent string `json:"oldContent,omitempty"`
		// NewContent is the post-edit file content for edit-kind tools.
		NewContent string `json:"newContent,omitempty"`
		// IsTodo routes the packet to the todo-list state.
		IsTodo bool `json:"isTodo,omitempty"`
		// Todos replaces the todo list wholesale when non-nil.
		Todos []TodoEntry `json:"todos,omitempty"`
		// SubagentType names the delegated sub-agent flavor when this
		// call spawned a nested run.
		SubagentType string `json:"subagentType,omitempty"`
		// SubagentSessionID identifies the nested run's session.
		SubagentSessionID string `json:"subagentSessionId,omitempty"`
		// SubagentPacketData is the raw packet buffer of the nested run.
		// Each element is independently parseable; the timeline builder
		// folds the buffer recursively up to its depth bound.
		SubagentPacketData []json.RawMessage `json:"subagentPacketData,omitempty"`
	}

	// TodoEntry is a single item of an agent-managed todo list.
	TodoEntry struct {
		// ID identifies the entry within its list, when the backend
		// assigns one.
		ID string `json:"id,omitempty"`
		// Content is the entry text.
		Content string `json:"content"`
		// Status is the entry lifecycle state.
		Status TodoStatus `json:"status,omitempty"`
	}

	// SubagentPacket addresses a delegated sub-agent session directly.
	// Reserved for forward compatibility; the fold ignores it.
	SubagentPacket struct {
		// SessionID identifies the sub-agent session.
		SessionID string `json:"sessionId,omitempty"`
		// Data is the opaque payload for the sub-agent.
		Data json.RawMessage `json:"data,omitempty"`
	}

	// PromptResponse reports the terminal outcome of the prompt turn.
	PromptResponse struct {
		// StopReason explains why the agent stopped, e.g. "end_turn",
		// "max_tokens", "refusal", "cancelled".
		StopReason string `json:"stopReason,omitempty"`
		// Summary is an optional human-readable completion summary.
		Summary string `json:"summary,omitempty"`
	}

	// ArtifactCreated announces a generated artifact.
	ArtifactCreated struct {
		// Artifact describes the generated output.
		Artifact Artifact `json:"artifact"`
	}

	// Artifact describes an output produced by the agent inside its
	// sandbox, addressable by the serving layer.
	Artifact struct {
		// ID uniquely identifies the artifact.
		ID string `json:"id"`
		// Kind classifies the artifact.
		Kind ArtifactKind `json:"kind"`
		// Name is the display name.
		Name string `json:"name"`
		// Path is the artifact location relative to the sandbox root.
		Path string `json:"path"`
		// PreviewURL serves an inline preview when the kind supports one.
		PreviewURL string `json:"previewUrl,omitempty"`
		// DownloadURL serves the raw artifact bytes.
		DownloadURL string `json:"downloadUrl,omitempty"`
		// MimeType is the artifact content type.
		MimeType string `json:"mimeType,omitempty"`
		// SizeBytes is the artifact size when known.
		SizeBytes int64 `json:"sizeBytes,omitempty"`
	}

	// Error reports a backend failure as data.
	Error struct {
		// Message is the failure description.
		Message string `json:"message"`
		// Code is an optional machine-readable error code.
		Code int `json:"code,omitempty"`
	}

	// SectionEnd closes the current logical section of the run.
	SectionEnd struct{}

	// Unknown wraps records that could not be decoded into any other
	// variant. It preserves the raw bytes and the declared type for
	// diagnostics; the fold treats it as a no-op.
	Unknown struct {
		// DeclaredType is the type discriminator the record carried, if
		// any.
		DeclaredType string `json:"type,omitempty"`
		// Raw is the undecoded record.
		Raw json.RawMessage `json:"-"`
	}
)

// PacketType implements Packet.
func (TextChunk) PacketType() Type { return TypeTextChunk }

// PacketType implements Packet.
func (ThinkingChunk) PacketType() Type { return TypeThinkingChunk }

// PacketType implements Packet.
func (ToolCallStart) PacketType() Type { return TypeToolCallStart }

// PacketType implements Packet.
func (ToolCallProgress) PacketType() Type { return TypeToolCallProgress }

// PacketType implements Packet.
func (SubagentPacket) PacketType() Type { return TypeSubagentPacket }

// PacketType implements Packet.
func (PromptResponse) PacketType() Type { return TypePromptResponse }

// PacketType implements Packet.
func (ArtifactCreated) PacketType() Type { return TypeArtifactCreated }

// PacketType implements Packet.
func (Error) PacketType() Type { return TypeError }

// PacketType implements Packet.
func (SectionEnd) PacketType() Type { return TypeSectionEnd }

// PacketType implements Packet.
func (Unknown) PacketType() Type { return TypeUnknown }
