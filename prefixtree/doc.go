// Package prefixtree stores segmented identifier paths such as
// plugin.widget.action and enumerates them again, breadth-first and lazily.
//
// # Forms
//
// A Node enumerates every prefix of every path inserted below it, starting
// with its own. For the root of a Tree that first prefix is the empty path:
//
//	t := prefixtree.New[string]()
//	t.Insert("a", "b")
//	t.Insert("d")
//	for p := range t.Prefixes() {
//	    // [] [a] [d] [a b]
//	}
//
// Tree.Paths is the grouped form used by API consumers: the traversal is
// rooted at each top-level segment in turn, so the empty root prefix never
// appears:
//
//	for p := range t.Paths() {
//	    // [a] [a b] [d]
//	}
//
// Tree.Leaves keeps only paths that end at a leaf.
//
// # Concurrency
//
// A tree is not safe for concurrent use. Enumeration reads the live children
// maps, so inserting while an enumeration is in progress is undefined.
package prefixtree
