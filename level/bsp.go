package level

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Side names the two half planes of a node's partition line.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// ChildRef is a tagged BSP child: either an interior node or a terminal
// subsector. Children are never absent in a well-formed tree.
type ChildRef struct {
	index       int
	isSubsector bool
}

func NodeChild(id NodeID) ChildRef {
	return ChildRef{index: int(id)}
}

func SubsectorChild(id SubsectorID) ChildRef {
	return ChildRef{index: int(id), isSubsector: true}
}

func (c ChildRef) IsSubsector() bool { return c.isSubsector }

func (c ChildRef) IsNode() bool { return !c.isSubsector }

// Node returns the child as a node index; asking the wrong variant is a
// contract violation.
func (c ChildRef) Node() (NodeID, error) {
	if c.isSubsector {
		return 0, newError(InvalidNodeAccess, "child is a subsector, not a node")
	}
	return NodeID(c.index), nil
}

// Subsector returns the child as a subsector index; asking the wrong
// variant is a contract violation.
func (c ChildRef) Subsector() (SubsectorID, error) {
	if !c.isSubsector {
		return 0, newError(InvalidNodeAccess, "child is a node, not a subsector")
	}
	return SubsectorID(c.index), nil
}

// Child returns the child on the given side.
func (n *Node) Child(s Side) ChildRef {
	if s == SideLeft {
		return n.Left
	}
	return n.Right
}

// NearestSide reports which side of the partition the point lies on. The
// sign convention is fixed: negative cross product means left. Segs were
// precomputed against this encoding.
func (n *Node) NearestSide(p mgl32.Vec2) Side {
	cross := (p.X()-n.Start.X())*n.Delta.Y() - (p.Y()-n.Start.Y())*n.Delta.X()
	if cross < 0 {
		return SideLeft
	}
	return SideRight
}

// Locate descends the tree from the root and returns the subsector
// containing the point. Cost is the tree depth.
func (l *Level) Locate(p mgl32.Vec2) (SubsectorID, error) {
	if len(l.Nodes) == 0 {
		return 0, newError(InvalidNodeAccess, "locate on a level with no BSP tree")
	}
	node := &l.Nodes[l.Root]
	for {
		child := node.Child(node.NearestSide(p))
		if child.IsSubsector() {
			return child.Subsector()
		}
		id, err := child.Node()
		if err != nil {
			return 0, err
		}
		node = &l.Nodes[id]
	}
}

// WalkSubsectors visits subsectors front to back as seen from the given
// point: at every node the near child (the one whose half plane contains
// the point) is descended first. The visit callback returns false to stop
// the walk early, which the renderer uses once the frame is fully occluded.
func (l *Level) WalkSubsectors(from mgl32.Vec2, visit func(SubsectorID) bool) error {
	return l.WalkSubsectorsFrom(l.Root, from, visit)
}

// WalkSubsectorsFrom is WalkSubsectors rooted at an arbitrary node.
func (l *Level) WalkSubsectorsFrom(root NodeID, from mgl32.Vec2, visit func(SubsectorID) bool) error {
	if len(l.Nodes) == 0 {
		return newError(InvalidNodeAccess, "walk on a level with no BSP tree")
	}
	if int(root) < 0 || int(root) >= len(l.Nodes) {
		return newError(InvalidNodeAccess, "walk from node %d of %d", root, len(l.Nodes))
	}
	_, err := l.walkNode(root, from, visit)
	return err
}

func (l *Level) walkNode(id NodeID, from mgl32.Vec2, visit func(SubsectorID) bool) (bool, error) {
	node := &l.Nodes[id]
	near := node.NearestSide(from)
	for _, side := range [2]Side{near, near.Other()} {
		more, err := l.walkChild(node.Child(side), from, visit)
		if err != nil || !more {
			return more, err
		}
	}
	return true, nil
}

func (l *Level) walkChild(c ChildRef, from mgl32.Vec2, visit func(SubsectorID) bool) (bool, error) {
	if c.IsSubsector() {
		id, err := c.Subsector()
		if err != nil {
			return false, err
		}
		return visit(id), nil
	}
	id, err := c.Node()
	if err != nil {
		return false, err
	}
	return l.walkNode(id, from, visit)
}

// Depth returns the maximum depth of the BSP tree, counting the root as 1.
func (l *Level) Depth() int {
	if len(l.Nodes) == 0 {
		return 0
	}
	return l.nodeDepth(l.Root)
}

func (l *Level) nodeDepth(id NodeID) int {
	node := &l.Nodes[id]
	depth := 0
	for _, c := range [2]ChildRef{node.Right, node.Left} {
		if c.IsNode() {
			child, _ := c.Node()
			if d := l.nodeDepth(child); d > depth {
				depth = d
			}
		}
	}
	return depth + 1
}
