package ecs

// IntersectEntities returns entity IDs present in both sets, in the dense
// order of the smaller set.
func IntersectEntities(a, b *SparseSet) []int {
	if a == nil || b == nil {
		return nil
	}
	if len(a.denseEntities) > len(b.denseEntities) {
		a, b = b, a
	}
	out := make([]int, 0, len(a.denseEntities))
	for _, id := range a.denseEntities {
		if b.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
