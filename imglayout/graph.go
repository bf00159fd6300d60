package imglayout

import (
	"github.com/gomlx/exceptions"
	. "github.com/gomlx/gomlx/pkg/core/graph" //nolint
)

// Graph-building variants of inference and conversion, for use inside GoMLX
// graph functions. As with all GoMLX graph operations, they panic in case of
// errors.

// InferNode guesses the axis roles of a graph node from its static shape.
func InferNode(x *Node) Inference {
	inf, err := Infer(x.Shape())
	if err != nil {
		exceptions.Panicf("imglayout.InferNode: %+v", err)
	}
	return inf
}

// ConvertNodeToLayout reorders the axes of a graph node to the target layout,
// inferring the current layout from the node's shape. A node already in the
// target layout is returned as is, without emitting a transpose.
func ConvertNodeToLayout(x *Node, target Layout) *Node {
	if !target.Valid() {
		exceptions.Panicf("imglayout.ConvertNodeToLayout: invalid target layout value %d", int(target))
	}
	inf := InferNode(x)
	if inf.Layout == target {
		return x
	}
	perm, err := permutation(inf.Axes, layoutAxes[target])
	if err != nil {
		exceptions.Panicf("imglayout.ConvertNodeToLayout: node shaped %s from %s to %s: %+v",
			x.Shape(), inf.Layout, target, err)
	}
	return TransposeAllDims(x, perm...)
}
