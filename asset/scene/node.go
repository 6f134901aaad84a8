package scene

import (
	"errors"
	"maps"
)

// SkipChildren can be returned by a Walk callback to prune the subtree
// rooted at the visited node.
var SkipChildren = errors.New("scene: skip children")

// Node is a group in the scene graph. It owns child nodes and geometries.
type Node struct {
	Name       string
	Children   []*Node
	Geometries []*Geometry
	StateSet   *StateSet

	UserStrings map[string]string
}

// Create a new named node.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Append a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Append a geometry.
func (n *Node) AddGeometry(geom *Geometry) {
	n.Geometries = append(n.Geometries, geom)
}

// Set a string user value.
func (n *Node) SetUserString(key, value string) {
	if n.UserStrings == nil {
		n.UserStrings = make(map[string]string)
	}
	n.UserStrings[key] = value
}

// Get a string user value and whether it was defined.
func (n *Node) UserString(key string) (string, bool) {
	value, exists := n.UserStrings[key]
	return value, exists
}

// Walk visits the node and its descendants in depth-first pre-order. The
// first error returned by fn aborts the walk, except SkipChildren which only
// prunes the current subtree.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if err := child.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Visit every geometry below (and including) this node.
func (n *Node) WalkGeometries(fn func(*Node, *Geometry) error) error {
	return n.Walk(func(node *Node) error {
		for _, geom := range node.Geometries {
			if err := fn(node, geom); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clone performs a deep copy of the subtree rooted at this node.
func (n *Node) Clone() *Node {
	clone := &Node{
		Name:        n.Name,
		StateSet:    n.StateSet.Clone(),
		UserStrings: maps.Clone(n.UserStrings),
	}
	if n.Children != nil {
		clone.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			if child != nil {
				clone.Children = append(clone.Children, child.Clone())
			}
		}
	}
	if n.Geometries != nil {
		clone.Geometries = make([]*Geometry, 0, len(n.Geometries))
		for _, geom := range n.Geometries {
			if geom != nil {
				clone.Geometries = append(clone.Geometries, geom.Clone())
			}
		}
	}
	return clone
}
