// SPDX-License-Identifier: MIT
//
// Package tree implements DecisionTreeNode's recursive fit/transform (spec
// §4.3): exhaustive split enumeration over numerical, discrete, categorical
// and same-unit columns of both tables and their time-stamp difference,
// picking the split that maximizes loss reduction at every node.
//
// Grounded on tsp's Branch-and-Bound engine (tsp/bb.go): both are a
// deterministic depth-first search over a combinatorial space (tours here,
// splits there) that tracks a running incumbent and prunes by a bound
// (gamma here, the UB/LB pair there), with the same "dedicated engine
// struct, not closures" discipline for hot-path state.
package tree

import "github.com/katalvlaran/relboost/splitenum"

// Node is a recursive variant: either a leaf holding a scalar weight, or an
// internal node holding (split, childSmaller, childGreater, weightAtNode)
// (spec §3 "Tree node").
type Node struct {
	IsLeaf bool
	Weight float64 // leaf: own weight plus every ancestor split's side weight; internal: the split's intercept

	Split        splitenum.Split
	ChildGreater *Node
	ChildSmaller *Node
}

// Leaf returns a leaf node with the given scalar weight.
func Leaf(weight float64) *Node { return &Node{IsLeaf: true, Weight: weight} }
