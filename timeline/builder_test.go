package timeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onyx-dot-app/agent-timeline/packet"
)

func TestTextChunksCoalesce(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.TextChunk{Text: "Hel"},
		packet.TextChunk{Text: "lo"},
	})
	require.Len(t, items, 1)
	text, ok := items[0].(TextItem)
	require.True(t, ok)
	require.Equal(t, "Hello", text.Text)
}

func TestEmptyChunksAreNoOps(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.TextChunk{Text: ""},
		packet.ThinkingChunk{Text: ""},
	})
	require.Empty(t, items)
}

func TestChunkKindsDoNotCrossCoalesce(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ThinkingChunk{Text: "let me see"},
		packet.TextChunk{Text: "The answer"},
		packet.TextChunk{Text: " is 42"},
		packet.ThinkingChunk{Text: "done"},
	})
	require.Len(t, items, 3)
	require.Equal(t, ItemTypeThinking, items[0].ItemType())
	require.Equal(t, ItemTypeText, items[1].ItemType())
	require.Equal(t, "The answer is 42", items[1].(TextItem).Text)
	require.Equal(t, ItemTypeThinking, items[2].ItemType())
	// Position-derived IDs stay unique across kinds.
	require.NotEqual(t, items[0].ItemID(), items[2].ItemID())
}

func TestInterveningStepOpensNewTextItem(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.TextChunk{Text: "before"},
		packet.ToolCallStart{ToolCallID: "t1"},
		packet.TextChunk{Text: "after"},
	})
	require.Len(t, items, 3)
	require.Equal(t, "before", items[0].(TextItem).Text)
	require.Equal(t, "after", items[2].(TextItem).Text)
}

func TestToolCallLifecycle(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1", Kind: packet.ToolKindExecute},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusInProgress, Command: "ls"},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusCompleted, RawOutput: "a.txt"},
	})
	require.Len(t, items, 1)
	call, ok := items[0].(ToolCallItem)
	require.True(t, ok)
	require.Equal(t, "t1", call.ID)
	require.Equal(t, packet.ToolKindExecute, call.Kind)
	require.Equal(t, packet.StatusCompleted, call.Status)
	require.Equal(t, "ls", call.Command)
	require.Equal(t, "a.txt", call.RawOutput)
}

func TestProgressWithoutStartImpliesStart(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallProgress{ToolCallID: "orphan", Status: packet.StatusInProgress},
	})
	require.Len(t, items, 1)
	call := items[0].(ToolCallItem)
	require.Equal(t, "orphan", call.ID)
	require.Equal(t, packet.StatusInProgress, call.Status)
}

func TestStartDefaultsToPending(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1"},
	})
	require.Equal(t, packet.StatusPending, items[0].(ToolCallItem).Status)
}

func TestLateStartDoesNotResetStatus(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusInProgress},
		packet.ToolCallStart{ToolCallID: "t1", Title: "late arrival"},
	})
	require.Len(t, items, 1)
	call := items[0].(ToolCallItem)
	require.Equal(t, packet.StatusInProgress, call.Status)
	require.Equal(t, "late arrival", call.Title)
}

func TestTerminalStatusIsSticky(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1"},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusFailed},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusInProgress},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusCompleted},
	})
	require.Equal(t, packet.StatusFailed, items[0].(ToolCallItem).Status)
}

func TestMergePreservesOmittedFields(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1", Title: "Edit file", Kind: packet.ToolKindEdit},
		packet.ToolCallProgress{ToolCallID: "t1", OldContent: "a", NewContent: "b"},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusCompleted},
	})
	call := items[0].(ToolCallItem)
	require.Equal(t, "Edit file", call.Title)
	require.Equal(t, packet.ToolKindEdit, call.Kind)
	require.Equal(t, "a", call.OldContent)
	require.Equal(t, "b", call.NewContent)
	require.Equal(t, packet.StatusCompleted, call.Status)
}

func TestUpsertPreservesItemPosition(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1"},
		packet.ToolCallStart{ToolCallID: "t2"},
		packet.ToolCallProgress{ToolCallID: "t1", Status: packet.StatusCompleted},
	})
	require.Len(t, items, 2)
	require.Equal(t, "t1", items[0].ItemID())
	require.Equal(t, "t2", items[1].ItemID())
}

func TestTodoPacketsRouteToTodoList(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallProgress{ToolCallID: "todo-1", IsTodo: true, Todos: []packet.TodoEntry{
			{Content: "first", Status: packet.TodoPending},
		}},
	})
	require.Len(t, items, 1)
	list, ok := items[0].(TodoListItem)
	require.True(t, ok)
	require.True(t, list.IsOpen)
	require.Len(t, list.Todos, 1)
}

func TestTodosReplaceWholesale(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallProgress{ToolCallID: "todo-1", IsTodo: true, Todos: []packet.TodoEntry{
			{Content: "a"}, {Content: "b"}, {Content: "c"},
		}},
		packet.ToolCallProgress{ToolCallID: "todo-1", IsTodo: true, Todos: []packet.TodoEntry{
			{Content: "only survivor", Status: packet.TodoCompleted},
		}},
	})
	list := items[0].(TodoListItem)
	require.Len(t, list.Todos, 1)
	require.Equal(t, "only survivor", list.Todos[0].Content)
}

func TestTerminalTodoStatusClosesList(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallProgress{ToolCallID: "todo-1", IsTodo: true, Todos: []packet.TodoEntry{{Content: "x"}}},
		packet.ToolCallProgress{ToolCallID: "todo-1", IsTodo: true, Status: packet.StatusCompleted},
	})
	list := items[0].(TodoListItem)
	require.False(t, list.IsOpen)
	require.Len(t, list.Todos, 1, "omitted todos must be preserved")
}

func TestInertKindsLeaveTimelineUnchanged(t *testing.T) {
	b := New()
	inert := []packet.Packet{
		packet.SubagentPacket{SessionID: "s1"},
		packet.PromptResponse{StopReason: "end_turn"},
		packet.ArtifactCreated{Artifact: packet.Artifact{ID: "a1"}},
		packet.Error{Message: "boom"},
		packet.SectionEnd{},
		packet.Unknown{DeclaredType: "plasma_burst"},
	}
	items := b.Build([]packet.Packet{packet.TextChunk{Text: "hi"}})
	for _, p := range inert {
		next := b.Fold(items, p, 0)
		require.Equal(t, items, next)
	}
}

func TestFoldDoesNotMutateInput(t *testing.T) {
	b := New()
	items := b.Build([]packet.Packet{
		packet.ToolCallStart{ToolCallID: "t1", Title: "before"},
	})
	snapshot := items[0].(ToolCallItem)
	next := b.Fold(items, packet.ToolCallProgress{ToolCallID: "t1", Title: "after", Status: packet.StatusCompleted}, 0)
	require.Equal(t, snapshot, items[0].(ToolCallItem), "input slice was mutated")
	require.Equal(t, "after", next[0].(ToolCallItem).Title)
}
