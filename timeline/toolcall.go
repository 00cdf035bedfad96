package timeline

import "github.com/onyx-dot-app/agent-timeline/packet"

// toolCallPatch is the partial update extracted from one tool-call packet.
// Presence semantics: empty strings and nil pointers mean "field not set by
// this packet" and leave the merged state untouched; anything else
// overwrites. subagentItemsSet distinguishes an explicitly (re)computed
// sub-timeline (including an empty one produced by depth truncation) from
// a packet that carried no nested buffer at all.
type toolCallPatch struct {
	turn              string
	kind              packet.ToolKind
	title             string
	description       string
	command           string
	status            packet.Status
	rawOutput         string
	isNewFile         *bool
	oldContent        string
	newContent        string
	subagentType      string
	subagentSessionID string
	subagentItems     []Item
	subagentItemsSet  bool
}

// upsertToolCall merges a patch into the tool call identified by id,
// creating it with pending status when no packet announced it yet. Progress
// packets arriving before (or instead of) their start packet therefore
// behave as if the start had been seen.
func upsertToolCall(items []Item, id string, patch toolCallPatch) []Item {
	return upsert(items,
		func(it Item) bool {
			_, ok := it.(ToolCallItem)
			return ok && it.ItemID() == id
		},
		func(existing Item, found bool) Item {
			cur := ToolCallItem{Type: ItemTypeToolCall, ID: id, Status: packet.StatusPending}
			if found {
				cur = existing.(ToolCallItem)
			}
			return mergeToolCall(cur, patch)
		})
}

// mergeToolCall applies field-level last-write-wins merge semantics, with one
// exception: a terminal status is sticky and no later packet can change it.
func mergeToolCall(cur ToolCallItem, p toolCallPatch) ToolCallItem {
	if p.turn != "" {
		cur.Turn = p.turn
	}
	if p.kind != "" {
		cur.Kind = p.kind
	}
	if p.title != "" {
		cur.Title = p.title
	}
	if p.description != "" {
		cur.Description = p.description
	}
	if p.command != "" {
		cur.Command = p.command
	}
	if p.status != "" && !cur.Status.Terminal() {
		cur.Status = p.status
	}
	if p.rawOutput != "" {
		cur.RawOutput = p.rawOutput
	}
	if p.isNewFile != nil {
		cur.IsNewFile = *p.isNewFile
	}
	if p.oldContent != "" {
		cur.OldContent = p.oldContent
	}
	if p.newContent != "" {
		cur.NewContent = p.newContent
	}
	if p.subagentType != "" {
		cur.SubagentType = p.subagentType
	}
	if p.subagentSessionID != "" {
		cur.SubagentSessionID = p.subagentSessionID
	}
	if p.subagentItemsSet {
		cur.SubagentItems = p.subagentItems
	}
	return cur
}
