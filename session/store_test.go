package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/onyx-dot-app/agent-timeline/timeline"
)

func TestStoreCreateGetDelete(t *testing.T) {
	s := NewStore()
	id, r := s.Create()
	require.NotNil(t, r)
	require.Equal(t, 1, s.Len())

	got, ok := s.Get(id)
	require.True(t, ok)
	require.Same(t, r, got)

	s.Delete(id)
	_, ok = s.Get(id)
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestStoreGetUnknownSession(t *testing.T) {
	s := NewStore()
	_, ok := s.Get(uuid.New())
	require.False(t, ok)
}

func TestStoreDeleteUnknownSessionIsNoop(t *testing.T) {
	s := NewStore()
	s.Create()
	s.Delete(uuid.New())
	require.Equal(t, 1, s.Len())
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	s := NewStore()
	_, a := s.Create()
	_, b := s.Create()
	a.Append(context.Background(), json.RawMessage(`{"type":"text_chunk","text":"only in a"}`))
	require.Len(t, a.Items(), 1)
	require.Empty(t, b.Items())
}

func TestStoreAppliesRecorderOptions(t *testing.T) {
	s := NewStore(WithBuilder(timeline.New(timeline.WithMaxSubagentDepth(0))))
	_, r := s.Create()
	r.Append(context.Background(), json.RawMessage(
		`{"type":"tool_call_progress","toolCallId":"tc-1","subagentPacketData":[{"type":"text_chunk","text":"hidden"}]}`,
	))
	items := r.Items()
	require.Len(t, items, 1)
	require.Empty(t, items[0].(timeline.ToolCallItem).SubagentItems)
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Create()
	s.Create()
	require.Equal(t, 2, s.Len())
	s.Reset()
	require.Equal(t, 0, s.Len())
}
