package prefixtree

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"
)

// RootLabel is drawn for the root node.
const RootLabel = "."

// Render draws t as boxed text, one box per segment, for help and debug
// output.
func Render[S comparable](t *Tree[S]) string {
	out := tree.NewTree(tree.NodeString(RootLabel))
	draw(out, t.node())
	return out.String()
}

func draw[S comparable](dst *tree.Tree, n *Node[S]) {
	i := 0
	for seg, child := range n.Children() {
		dst.AddChild(tree.NodeString(fmt.Sprint(seg)))
		sub, err := dst.Child(i)
		if err != nil {
			return
		}
		draw(sub, child)
		i++
	}
}
