package packet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatorAcceptsWellFormedPackets(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	good := []string{
		`{"type":"text_chunk","text":"hi"}`,
		`{"type":"thinking_chunk","text":"hmm","turnId":"turn-1"}`,
		`{"type":"tool_call_start","toolCallId":"t1","kind":"execute"}`,
		`{"type":"tool_call_progress","toolCallId":"t1","status":"in_progress"}`,
		`{"type":"tool_call_progress","toolCallId":"todo","isTodo":true,"todos":[{"content":"x"}]}`,
		`{"type":"artifact_created","artifact":{"id":"a1","kind":"code","name":"n","path":"p"}}`,
		`{"type":"error","message":"boom"}`,
		`{"type":"section_end"}`,
		`{"type":"prompt_response","stopReason":"end_turn"}`,
	}
	for _, raw := range good {
		require.NoError(t, v.Validate(json.RawMessage(raw)), raw)
	}
}

func TestValidatorRejectsMalformedPackets(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	bad := []string{
		`{`,
		`{"text":"no type"}`,
		`{"type":"plasma_burst"}`,
		`{"type":"text_chunk"}`,
		`{"type":"tool_call_start"}`,
		`{"type":"tool_call_progress","toolCallId":""}`,
		`{"type":"tool_call_progress","toolCallId":"t1","status":"exploded"}`,
		`{"type":"error"}`,
		`{"type":"artifact_created","artifact":{"id":"a1"}}`,
	}
	for _, raw := range bad {
		require.Error(t, v.Validate(json.RawMessage(raw)), raw)
	}
}

func TestValidatorDisagreesWithParserOnlyTowardStrictness(t *testing.T) {
	// Everything the validator accepts must parse to a non-Unknown variant;
	// the reverse does not hold because Parse is deliberately tolerant.
	v, err := NewValidator()
	require.NoError(t, err)
	raws := []string{
		`{"type":"text_chunk","text":"hi"}`,
		`{"type":"tool_call_start","toolCallId":"t1"}`,
		`{"type":"section_end"}`,
	}
	for _, raw := range raws {
		require.NoError(t, v.Validate(json.RawMessage(raw)))
		require.NotEqual(t, TypeUnknown, Parse(json.RawMessage(raw)).PacketType())
	}
}
