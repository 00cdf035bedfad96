package timeline

// upsert locates the item selected by match and replaces it in place with
// apply(existing, true), preserving its timeline position; when no item
// matches, apply(nil, false) is appended. The input slice is never mutated:
// the result is always a fresh slice, which keeps the fold referentially
// transparent.
//
// The scan is linear: a timeline holds few items relative to the packet
// volume that produced it, so positional search beats maintaining an index.
func upsert(items []Item, match func(Item) bool, apply func(existing Item, found bool) Item) []Item {
	for i, it := range items {
		if match(it) {
			out := make([]Item, len(items))
			copy(out, items)
			out[i] = apply(it, true)
			return out
		}
	}
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	return append(out, apply(nil, false))
}
