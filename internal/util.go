package internal

// ReconstructPath walks parent links back from current until parentOf
// reports no predecessor, and returns the chain in start-to-current order.
func ReconstructPath[NodeType comparable](
	parentOf func(NodeType) (NodeType, bool),
	current NodeType,
) []NodeType {
	path := []NodeType{current}
	for {
		previousNode, exists := parentOf(current)
		if !exists {
			break
		}
		path = append(path, previousNode)
		current = previousNode
	}
	Reverse(path)
	return path
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// PathCost sums step(a, b) over consecutive pairs of path.
func PathCost[NodeType any](path []NodeType, step func(a, b NodeType) float64) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += step(path[i-1], path[i])
	}
	return total
}
