package rig

import "fmt"

// NodeID addresses a node inside a [Scene]. IDs are stable for the life of
// the scene.
type NodeID int

const NoNode NodeID = -1

type Node struct {
	ID       NodeID
	Name     string
	Parent   NodeID
	Local    Mat4
	Meshes   []*Mesh
	Children []NodeID
}

// Scene is an arena of nodes. The hierarchy is expressed with indices so
// nodes never hold pointers to each other.
type Scene struct {
	nodes []Node
	roots []NodeID
}

func NewScene() *Scene {
	return &Scene{}
}

// Add appends a node under parent (NoNode for a root) and returns its id.
func (s *Scene) Add(parent NodeID, name string, local Mat4, meshes ...*Mesh) (NodeID, error) {
	if parent != NoNode && !s.valid(parent) {
		return NoNode, fmt.Errorf("rig: parent node %d does not exist", parent)
	}
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		ID:     id,
		Name:   name,
		Parent: parent,
		Local:  local,
		Meshes: meshes,
	})
	if parent == NoNode {
		s.roots = append(s.roots, id)
	} else {
		s.nodes[parent].Children = append(s.nodes[parent].Children, id)
	}
	return id, nil
}

func (s *Scene) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

func (s *Scene) Len() int { return len(s.nodes) }

// Node returns a pointer into the arena; it stays valid until the next Add.
func (s *Scene) Node(id NodeID) *Node {
	if !s.valid(id) {
		return nil
	}
	return &s.nodes[id]
}

func (s *Scene) Find(name string) (NodeID, bool) {
	for _, n := range s.nodes {
		if n.Name == name {
			return n.ID, true
		}
	}
	return NoNode, false
}

// Traverse visits every node in pre-order with its world transform.
// world = parentWorld * Local, then * pose[Name] when the pose has an entry.
func (s *Scene) Traverse(pose Pose, fn func(n *Node, world Mat4)) {
	if s == nil {
		return
	}
	for _, root := range s.roots {
		s.visit(root, Identity(), pose, fn)
	}
}

func (s *Scene) visit(id NodeID, parentWorld Mat4, pose Pose, fn func(*Node, Mat4)) {
	n := &s.nodes[id]
	world := parentWorld.Mul(n.Local)
	if r, ok := pose[n.Name]; ok {
		world = world.Mul(r)
	}
	fn(n, world)
	for _, c := range n.Children {
		s.visit(c, world, pose, fn)
	}
}

// WorldTransforms collects the world transform of every named node.
func (s *Scene) WorldTransforms(pose Pose) map[string]Mat4 {
	out := make(map[string]Mat4)
	s.Traverse(pose, func(n *Node, world Mat4) {
		if n.Name != "" {
			out[n.Name] = world
		}
	})
	return out
}
