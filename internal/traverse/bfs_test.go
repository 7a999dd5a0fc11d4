package traverse

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNode is a minimal node type; the traversal must not depend on anything
// beyond Children().
type testNode struct {
	name     string
	children []*testNode
}

func (n *testNode) Children() []*testNode {
	return n.children
}

func node(name string, children ...*testNode) *testNode {
	return &testNode{name: name, children: children}
}

func names(nodes []*testNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.name
	}
	return out
}

func collect(start *testNode) []*testNode {
	return slices.Collect(TraverseChildren(start))
}

func TestTraverseChildren_NoChildren(t *testing.T) {
	leaf := node("leaf")
	assert.Empty(t, collect(leaf))
}

func TestTraverseChildren_HiggsToCharmPair(t *testing.T) {
	m1, m2 := node("m1"), node("m2")
	h := node("h", m1, m2)

	assert.Equal(t, []string{"m1", "m2"}, names(collect(h)))
}

func TestTraverseChildren_LevelOrder(t *testing.T) {
	//        a
	//      /   \
	//     b     c
	//    / \     \
	//   d   e     f
	//   |
	//   g
	g := node("g")
	d := node("d", g)
	b := node("b", d, node("e"))
	c := node("c", node("f"))
	a := node("a", b, c)

	assert.Equal(t, []string{"b", "c", "d", "e", "f", "g"}, names(collect(a)))
}

func TestTraverseChildren_SharedDescendantYieldedOnce(t *testing.T) {
	shared := node("shared")
	a := node("a", node("b", shared), node("c", shared))

	got := names(collect(a))
	assert.Equal(t, []string{"b", "c", "shared"}, got)
}

func TestTraverseChildren_CycleTerminates(t *testing.T) {
	a := node("a")
	b := node("b")
	c := node("c")
	a.children = []*testNode{b}
	b.children = []*testNode{c}
	c.children = []*testNode{a, b} // back edges to ancestors

	got := names(collect(a))
	assert.Equal(t, []string{"b", "c"}, got, "start excluded, each node at most once")

	got = names(collect(b))
	assert.Equal(t, []string{"c", "a"}, got)
}

func TestTraverseChildren_SelfLoop(t *testing.T) {
	a := node("a")
	a.children = []*testNode{a}
	assert.Empty(t, collect(a))
}

func TestTraverseChildren_DuplicateChildEntries(t *testing.T) {
	x := node("x")
	a := node("a", x, x)
	assert.Equal(t, []string{"x"}, names(collect(a)))
}

func TestTraverseChildren_EarlyBreak(t *testing.T) {
	a := node("a", node("b"), node("c"), node("d"))

	var got []string
	for n := range TraverseChildren(a) {
		got = append(got, n.name)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestTraverseChildren_FreshPerCall(t *testing.T) {
	a := node("a", node("b", node("c")))
	seq := TraverseChildren(a)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, names(first), names(second))
}

func TestTraverseChildren_ConcurrentReaders(t *testing.T) {
	leaves := make([]*testNode, 50)
	for i := range leaves {
		leaves[i] = node("leaf")
	}
	root := node("root", node("mid", leaves...))

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			counts[i] = len(collect(root))
		}(i)
	}
	wg.Wait()

	for _, c := range counts {
		assert.Equal(t, 51, c)
	}
}

func TestWalk_Depths(t *testing.T) {
	g := node("g")
	a := node("a", node("b", g), node("c"))

	var depths []int
	var got []string
	for n, d := range Walk(a) {
		got = append(got, n.name)
		depths = append(depths, d)
	}
	require.Equal(t, []string{"b", "c", "g"}, got)
	assert.Equal(t, []int{1, 1, 2}, depths)
}

func TestWithinDepth(t *testing.T) {
	a := node("a", node("b", node("d", node("e"))), node("c"))

	var got []string
	for n := range WithinDepth(Walk(a), 1) {
		got = append(got, n.name)
	}
	assert.Equal(t, []string{"b", "c"}, got)

	got = got[:0]
	for n := range WithinDepth(Walk(a), 0) {
		got = append(got, n.name)
	}
	assert.Equal(t, []string{"b", "c", "d", "e"}, got)
}
