package prefixtree

import (
	"iter"

	"github.com/emirpasic/gods/v2/maps/linkedhashmap"
	"github.com/emirpasic/gods/v2/queues/arrayqueue"
)

// Node is one segment of a stored path. Its children keep the order in which
// their segments were first inserted. A node's existence means a path ending
// at it was inserted; there is no separate end marker.
type Node[S comparable] struct {
	segment  S
	root     bool
	children *linkedhashmap.Map[S, *Node[S]]
}

func newNode[S comparable](segment S, root bool) *Node[S] {
	return &Node[S]{
		segment:  segment,
		root:     root,
		children: linkedhashmap.New[S, *Node[S]](),
	}
}

// Segment returns the node's segment. The root has none and returns the zero
// value.
func (n *Node[S]) Segment() S { return n.segment }

func (n *Node[S]) IsRoot() bool { return n.root }

// Len returns the number of direct children.
func (n *Node[S]) Len() int { return n.children.Size() }

func (n *Node[S]) Child(segment S) (*Node[S], bool) {
	return n.children.Get(segment)
}

// Children iterates the direct children in insertion order.
func (n *Node[S]) Children() iter.Seq2[S, *Node[S]] {
	return func(yield func(S, *Node[S]) bool) {
		it := n.children.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// Insert adds path below n, creating the nodes that are missing. Inserting
// an existing path, a prefix of one or an extension of one never duplicates
// a sibling. An empty path is rejected with an *InvalidPathError.
func (n *Node[S]) Insert(path ...S) error {
	if len(path) == 0 {
		return &InvalidPathError{Reason: "empty path"}
	}
	node := n
	for _, seg := range path {
		child, ok := node.children.Get(seg)
		if !ok {
			child = newNode(seg, false)
			node.children.Put(seg, child)
		}
		node = child
	}
	return nil
}

// Prefixes enumerates n's own prefix and then every path below it,
// breadth-first, siblings in insertion order. Each call starts a fresh
// traversal. Yielded slices are not reused.
func (n *Node[S]) Prefixes() iter.Seq[[]S] {
	return func(yield func([]S) bool) {
		for prefix := range n.walk() {
			if !yield(prefix) {
				return
			}
		}
	}
}

func (n *Node[S]) ownPrefix() []S {
	if n.root {
		return []S{}
	}
	return []S{n.segment}
}

type entry[S comparable] struct {
	prefix []S
	node   *Node[S]
}

func (n *Node[S]) walk() iter.Seq2[[]S, *Node[S]] {
	return func(yield func([]S, *Node[S]) bool) {
		queue := arrayqueue.New[*entry[S]]()
		queue.Enqueue(&entry[S]{prefix: n.ownPrefix(), node: n})
		for !queue.Empty() {
			e, _ := queue.Dequeue()
			it := e.node.children.Iterator()
			for it.Next() {
				queue.Enqueue(&entry[S]{prefix: extend(e.prefix, it.Key()), node: it.Value()})
			}
			if !yield(e.prefix, e.node) {
				return
			}
		}
	}
}

func extend[S any](prefix []S, seg S) []S {
	p := make([]S, len(prefix), len(prefix)+1)
	copy(p, prefix)
	return append(p, seg)
}

// Tree is a root node plus the grouped view API consumers enumerate. The
// zero value is an empty tree.
type Tree[S comparable] struct {
	root *Node[S]
}

func New[S comparable]() *Tree[S] {
	return &Tree[S]{root: newNode(*new(S), true)}
}

func (t *Tree[S]) node() *Node[S] {
	if t.root == nil {
		t.root = newNode(*new(S), true)
	}
	return t.root
}

// Root exposes the raw tree.
func (t *Tree[S]) Root() *Node[S] { return t.node() }

func (t *Tree[S]) Insert(path ...S) error { return t.node().Insert(path...) }

// Prefixes is the raw enumeration: the empty root prefix first, then every
// prefix of every inserted path.
func (t *Tree[S]) Prefixes() iter.Seq[[]S] { return t.node().Prefixes() }

// Paths is the grouped enumeration: for each top-level segment in insertion
// order, the traversal rooted at that segment's node.
func (t *Tree[S]) Paths() iter.Seq[[]S] {
	return func(yield func([]S) bool) {
		for _, child := range t.node().Children() {
			for prefix := range child.walk() {
				if !yield(prefix) {
					return
				}
			}
		}
	}
}

// Leaves is Paths restricted to paths ending at a node with no children.
func (t *Tree[S]) Leaves() iter.Seq[[]S] {
	return func(yield func([]S) bool) {
		for _, child := range t.node().Children() {
			for prefix, n := range child.walk() {
				if n.Len() > 0 {
					continue
				}
				if !yield(prefix) {
					return
				}
			}
		}
	}
}

// Contains reports whether path, or a longer path starting with it, was
// inserted.
func (t *Tree[S]) Contains(path ...S) bool {
	if len(path) == 0 {
		return false
	}
	node := t.node()
	for _, seg := range path {
		child, ok := node.Child(seg)
		if !ok {
			return false
		}
		node = child
	}
	return true
}

// Len returns the number of nodes below the root.
func (t *Tree[S]) Len() int {
	count := 0
	for range t.node().walk() {
		count++
	}
	return count - 1
}
