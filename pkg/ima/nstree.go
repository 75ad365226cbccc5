package ima

import (
	"github.com/pkg/errors"
)

// NamespaceStatus is the lifecycle state of a namespace node.
type NamespaceStatus int

const (
	StatusActive NamespaceStatus = iota
	StatusClosed
)

func (s NamespaceStatus) String() string {
	if s == StatusClosed {
		return "closed"
	}
	return "active"
}

// NamespaceNode is one IMA namespace seen in the log.
type NamespaceNode struct {
	ID       string
	Status   NamespaceStatus
	parent   *NamespaceNode
	children []*NamespaceNode
}

func (n *NamespaceNode) Parent() *NamespaceNode { return n.parent }

// Children are returned in the order they were created in the log.
func (n *NamespaceNode) Children() []*NamespaceNode { return n.children }

func (n *NamespaceNode) find(id string) *NamespaceNode {
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if f := c.find(id); f != nil {
			return f
		}
	}
	return nil
}

// NamespaceTree records every namespace observed in a log. Nodes are never
// removed; closing only changes their status.
type NamespaceTree struct {
	root *NamespaceNode
}

func NewNamespaceTree() *NamespaceTree {
	return &NamespaceTree{}
}

// Root returns nil until the first namespace id is seen.
func (t *NamespaceTree) Root() *NamespaceNode { return t.root }

// EnsureRoot creates the root with id if the tree is empty.
func (t *NamespaceTree) EnsureRoot(id string) {
	if t.root == nil {
		t.root = &NamespaceNode{ID: id}
	}
}

// Find does a depth-first search from the root.
func (t *NamespaceTree) Find(id string) *NamespaceNode {
	if t.root == nil {
		return nil
	}
	return t.root.find(id)
}

func (t *NamespaceTree) lookup(id string) (*NamespaceNode, error) {
	n := t.Find(id)
	if n == nil {
		return nil, errors.Wrapf(ErrUnknownNamespace, "namespace %q", id)
	}
	return n, nil
}

// InsertChild appends a new active namespace under parentID.
func (t *NamespaceTree) InsertChild(parentID, childID string) (*NamespaceNode, error) {
	p, err := t.lookup(parentID)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %q", childID)
	}
	if t.Find(childID) != nil {
		return nil, errors.Wrapf(ErrDuplicateNamespace, "namespace %q", childID)
	}
	c := &NamespaceNode{ID: childID, parent: p}
	p.children = append(p.children, c)
	return c, nil
}

// Close marks a namespace closed. Its descendants are left untouched.
func (t *NamespaceTree) Close(id string) error {
	n, err := t.lookup(id)
	if err != nil {
		return errors.Wrap(err, "closing")
	}
	n.Status = StatusClosed
	return nil
}

// Depth counts the node and each of its ancestors, so the root is 1.
func (t *NamespaceTree) Depth(id string) (int, error) {
	n, err := t.lookup(id)
	if err != nil {
		return 0, err
	}
	depth := 0
	for ; n != nil; n = n.parent {
		depth++
	}
	return depth, nil
}

// Walk visits every node depth-first in discovery order.
func (t *NamespaceTree) Walk(fn func(n *NamespaceNode, depth int)) {
	var walk func(n *NamespaceNode, depth int)
	walk = func(n *NamespaceNode, depth int) {
		fn(n, depth)
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	if t.root != nil {
		walk(t.root, 1)
	}
}
