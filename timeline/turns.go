package timeline

// TurnGroup is one turn of the timeline: the steps the agent issued within a
// single reasoning turn, which may render side by side (several tool calls
// launched in parallel, for example).
type TurnGroup struct {
	// TurnID is the backend-supplied turn identifier shared by the steps.
	// Empty for steps that carried no turn metadata.
	TurnID string `json:"turnId,omitempty" yaml:"turnId,omitempty"`
	// Steps are the turn's items in their original timeline order.
	Steps []Item `json:"steps" yaml:"steps"`
}

// GroupByTurn groups a flat timeline into turns keyed by each item's
// backend-supplied turn identifier. Groups appear in first-appearance order
// of their turn, and steps keep their relative timeline order within a group,
// so flattening the groups in order with turn de-interleaving undone
// reproduces every item exactly once.
//
// Items without a turn identifier cannot be parallel with anything and each
// form a singleton group at their own position.
//
// GroupByTurn is a pure function of its input: both the flat timeline and
// the grouped view derive from the same fold, so consumers may cache either
// keyed on the identity of the source packet log.
func GroupByTurn(items []Item) []TurnGroup {
	if len(items) == 0 {
		return nil
	}
	grouped := make(map[string][]Item)
	var out []TurnGroup
	for _, it := range items {
		turn := it.TurnID()
		if turn == "" {
			out = append(out, TurnGroup{Steps: []Item{it}})
			continue
		}
		if _, ok := grouped[turn]; !ok {
			// Reserve the group's position at the turn's first appearance.
			out = append(out, TurnGroup{TurnID: turn})
		}
		grouped[turn] = append(grouped[turn], it)
	}
	for i := range out {
		if out[i].TurnID != "" {
			out[i].Steps = grouped[out[i].TurnID]
		}
	}
	return out
}
