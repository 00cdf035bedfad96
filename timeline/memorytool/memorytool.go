// Package memorytool derives the display state of a memory-tool action from
// its packet subset.
//
// Unlike the timeline builder, which merges packets incrementally
// (last-write-wins per field), this package recomputes state from the entire
// filtered subset on every call. Memory deltas are sparse, typically a
// single delta per action, and consumers re-derive the state from the same
// bounded slice on every render, so a full rescan is simpler than carrying a
// second incremental-merge implementation. The two reconciliation policies
// are intentionally different; keep them that way unless the packet producer
// starts chunking memory deltas.
package memorytool

// Kind discriminates memory-action packets.
type Kind string

const (
	// KindStart marks the beginning of a memory action.
	KindStart Kind = "start"
	// KindNoAccess reports that the agent has no memory access. It also
	// counts as a start: the action was attempted.
	KindNoAccess Kind = "no_access"
	// KindDelta carries the memory text and operation. Deltas are not
	// chunked; at most one delta appears per action and its fields are
	// used directly.
	KindDelta Kind = "delta"
	// KindSectionEnd closes the action.
	KindSectionEnd Kind = "section_end"
	// KindError closes the action with a failure.
	KindError Kind = "error"
)

// Operation is the kind of memory mutation performed.
type Operation string

const (
	// OperationAdd appends a new memory entry.
	OperationAdd Operation = "add"
	// OperationReplace overwrites the entry addressed by IndexToReplace.
	OperationReplace Operation = "replace"
	// OperationDelete removes the entry addressed by IndexToReplace.
	OperationDelete Operation = "delete"
)

type (
	// Packet is one record of a memory action's packet subset. Callers
	// filter the session packet log down to the records of a single action
	// before computing state.
	Packet struct {
		// Kind discriminates the record.
		Kind Kind `json:"kind"`
		// MemoryText is the entry text carried by delta records.
		MemoryText string `json:"memoryText,omitempty"`
		// Operation is the mutation carried by delta records.
		Operation Operation `json:"operation,omitempty"`
		// IndexToReplace addresses the target entry for replace and delete
		// operations. Nil for add.
		IndexToReplace *int `json:"indexToReplace,omitempty"`
	}

	// State is the derived display state of one memory action. It is a
	// value recomputed on demand, never stored or folded.
	State struct {
		// HasStarted reports that the action began (a start or no-access
		// record exists).
		HasStarted bool `json:"hasStarted" yaml:"hasStarted"`
		// NoAccess reports that the agent lacks memory access.
		NoAccess bool `json:"noAccess" yaml:"noAccess"`
		// MemoryText is the entry text from the action's delta record.
		MemoryText string `json:"memoryText,omitempty" yaml:"memoryText,omitempty"`
		// Operation is the mutation from the action's delta record.
		Operation Operation `json:"operation,omitempty" yaml:"operation,omitempty"`
		// IndexToReplace addresses the target entry, when the operation
		// has one.
		IndexToReplace *int `json:"indexToReplace,omitempty" yaml:"indexToReplace,omitempty"`
		// IsComplete reports that the action finished (a section-end or
		// error record exists).
		IsComplete bool `json:"isComplete" yaml:"isComplete"`
	}
)

// Compute scans the action's full packet subset and derives its state. The
// scan order only matters for deltas: when the subset unexpectedly holds
// several, the latest wins, matching the merge direction of the rest of the
// timeline.
func Compute(pkts []Packet) State {
	var s State
	for _, p := range pkts {
		switch p.Kind {
		case KindStart:
			s.HasStarted = true
		case KindNoAccess:
			s.HasStarted = true
			s.NoAccess = true
		case KindDelta:
			s.MemoryText = p.MemoryText
			s.Operation = p.Operation
			s.IndexToReplace = p.IndexToReplace
		case KindSectionEnd, KindError:
			s.IsComplete = true
		}
	}
	return s
}
