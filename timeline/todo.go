package timeline

import "github.com/onyx-dot-app/agent-timeline/packet"

// todoListPatch is the partial update extracted from one todo-flagged tool
// packet. todosSet marks a wholesale replacement of the entry list
// (including replacement by an explicitly empty list) as opposed to a packet
// that carried no entries. isOpen is derived from the packet's tool status:
// a terminal status closes the list.
type todoListPatch struct {
	turn     string
	todos    []packet.TodoEntry
	todosSet bool
	isOpen   *bool
}

// upsertTodoList merges a patch into the todo list identified by id,
// creating an open, empty list when no packet announced it yet.
func upsertTodoList(items []Item, id string, patch todoListPatch) []Item {
	return upsert(items,
		func(it Item) bool {
			_, ok := it.(TodoListItem)
			return ok && it.ItemID() == id
		},
		func(existing Item, found bool) Item {
			cur := TodoListItem{Type: ItemTypeTodoList, ID: id, IsOpen: true}
			if found {
				cur = existing.(TodoListItem)
			}
			return mergeTodoList(cur, patch)
		})
}

// mergeTodoList replaces the entry list wholesale when the patch carries one.
// Entries are deliberately not merged one by one: each packet snapshots the
// complete list, so last-write-wins applies to the list as a unit.
func mergeTodoList(cur TodoListItem, p todoListPatch) TodoListItem {
	if p.turn != "" {
		cur.Turn = p.turn
	}
	if p.todosSet {
		cur.Todos = p.todos
	}
	if p.isOpen != nil {
		cur.IsOpen = *p.isOpen
	}
	return cur
}
