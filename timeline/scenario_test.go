package timeline

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/onyx-dot-app/agent-timeline/packet"
)

type (
	scenarioFile struct {
		Scenarios []scenario `yaml:"scenarios"`
	}

	scenario struct {
		Name    string       `yaml:"name"`
		Packets []string     `yaml:"packets"`
		Expect  []expectItem `yaml:"expect"`
	}

	// expectItem asserts the fields a scenario cares about; zero values are
	// not checked except where a dedicated field says otherwise.
	expectItem struct {
		Type         ItemType      `yaml:"type"`
		ID           string        `yaml:"id"`
		Turn         string        `yaml:"turn"`
		Text         string        `yaml:"text"`
		Title        string        `yaml:"title"`
		Status       packet.Status `yaml:"status"`
		RawOutput    string        `yaml:"rawOutput"`
		Open         *bool         `yaml:"open"`
		TodoCount    *int          `yaml:"todoCount"`
		SubItemCount *int          `yaml:"subItemCount"`
	}
)

func TestScenarios(t *testing.T) {
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	var file scenarioFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.NotEmpty(t, file.Scenarios)

	b := New()
	for _, sc := range file.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			raws := make([]json.RawMessage, len(sc.Packets))
			for i, p := range sc.Packets {
				raws[i] = json.RawMessage(p)
			}
			items := b.BuildRaw(raws)
			require.Len(t, items, len(sc.Expect))
			for i, want := range sc.Expect {
				checkItem(t, want, items[i])
			}
		})
	}
}

func checkItem(t *testing.T, want expectItem, got Item) {
	t.Helper()
	require.Equal(t, want.Type, got.ItemType())
	require.Equal(t, want.ID, got.ItemID())
	if want.Turn != "" {
		require.Equal(t, want.Turn, got.TurnID())
	}
	switch it := got.(type) {
	case TextItem:
		require.Equal(t, want.Text, it.Text)
	case ThinkingItem:
		require.Equal(t, want.Text, it.Text)
	case ToolCallItem:
		if want.Title != "" {
			require.Equal(t, want.Title, it.Title)
		}
		if want.Status != "" {
			require.Equal(t, want.Status, it.Status)
		}
		if want.RawOutput != "" {
			require.Equal(t, want.RawOutput, it.RawOutput)
		}
		if want.SubItemCount != nil {
			require.Len(t, it.SubagentItems, *want.SubItemCount)
		}
	case TodoListItem:
		if want.Open != nil {
			require.Equal(t, *want.Open, it.IsOpen)
		}
		if want.TodoCount != nil {
			require.Len(t, it.Todos, *want.TodoCount)
		}
	}
}
