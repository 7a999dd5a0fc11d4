package traverse

import "iter"

// Parent is any comparable node exposing an ordered list of child nodes.
type Parent[N any] interface {
	comparable
	Children() []N
}

// queueItem pairs a node with its distance from the start node.
type queueItem[N any] struct {
	node  N
	depth int
}

// Walk yields every node reachable from start's children in breadth-first
// order, paired with its depth (direct children have depth 1). Within a level,
// nodes appear in the order their parents listed them. The start node itself
// is never yielded, even if a cycle leads back to it.
func Walk[N Parent[N]](start N) iter.Seq2[N, int] {
	return func(yield func(N, int) bool) {
		visited := map[N]struct{}{start: {}}
		queue := make([]queueItem[N], 0, len(start.Children()))

		enqueueChildren := func(from N, depth int) {
			for _, child := range from.Children() {
				if _, seen := visited[child]; seen {
					continue
				}
				visited[child] = struct{}{}
				queue = append(queue, queueItem[N]{node: child, depth: depth})
			}
		}

		enqueueChildren(start, 1)
		for len(queue) > 0 {
			item := queue[0]
			queue = queue[1:]
			if !yield(item.node, item.depth) {
				return
			}
			enqueueChildren(item.node, item.depth+1)
		}
	}
}

// TraverseChildren is Walk without depths.
func TraverseChildren[N Parent[N]](start N) iter.Seq[N] {
	return func(yield func(N) bool) {
		for n := range Walk(start) {
			if !yield(n) {
				return
			}
		}
	}
}

// WithinDepth truncates a breadth-first walk after maxDepth levels.
// maxDepth <= 0 leaves the walk unbounded.
func WithinDepth[N any](walk iter.Seq2[N, int], maxDepth int) iter.Seq2[N, int] {
	if maxDepth <= 0 {
		return walk
	}
	return func(yield func(N, int) bool) {
		for n, depth := range walk {
			// Depths are non-decreasing in BFS order.
			if depth > maxDepth {
				return
			}
			if !yield(n, depth) {
				return
			}
		}
	}
}
