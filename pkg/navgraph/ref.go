package navgraph

import (
	"fmt"

	"github.com/dd0wney/cluso-navmesh/pkg/geom"
)

// RefKind tags what a NodeRef points at.
type RefKind uint8

const (
	KindStatic RefKind = iota
	KindStart
	KindEnd
)

// NodeRef refers to a static graph node by index or to one of the two
// per-query dynamic nodes. The zero value is Static(0).
type NodeRef struct {
	Kind  RefKind
	Index int32
}

var (
	// DynamicStart is the current query's literal start position.
	DynamicStart = NodeRef{Kind: KindStart, Index: -1}
	// DynamicEnd is the current query's literal end position.
	DynamicEnd = NodeRef{Kind: KindEnd, Index: -1}
)

// Static returns a reference to static node i.
func Static(i int) NodeRef {
	return NodeRef{Kind: KindStatic, Index: int32(i)}
}

// IsStatic reports whether r indexes the static node table.
func (r NodeRef) IsStatic() bool {
	return r.Kind == KindStatic
}

// IsDynamic reports whether r is a per-query node.
func (r NodeRef) IsDynamic() bool {
	return r.Kind != KindStatic
}

func (r NodeRef) String() string {
	switch r.Kind {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	default:
		return fmt.Sprintf("#%d", r.Index)
	}
}

// Connection is a directed edge between two nodes. Cost is the distance
// between the portal midpoints.
type Connection struct {
	From NodeRef
	To   NodeRef
	Cost float64
}

// Connect returns a connection from a to b costed by midpoint distance.
func Connect(from NodeRef, a Portal, to NodeRef, b Portal) Connection {
	return Connection{From: from, To: to, Cost: a.Midpoint.Dist(b.Midpoint)}
}

// Node is one passage of the dual graph.
type Node struct {
	Ref    NodeRef
	Portal Portal
	// Triangles holds the owning triangles, -1 when absent.
	Triangles   [2]int
	Connections []Connection
}

// Borders reports whether the node lies on triangle t.
func (n *Node) Borders(t int) bool {
	return t >= 0 && (n.Triangles[0] == t || n.Triangles[1] == t)
}

// Centre returns the portal midpoint.
func (n *Node) Centre() geom.Vec2 {
	return n.Portal.Midpoint
}
