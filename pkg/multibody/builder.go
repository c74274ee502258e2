package multibody

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	kerrors "multibody-kinematics/pkg/errors"
)

type bodySpec struct {
	name   string
	parent string
	joint  Joint
}

// Builder collects bodies by name and orders them into a Tree. Bodies may
// be added in any order as long as the parent graph is a tree rooted at
// the world.
type Builder struct {
	specs []bodySpec
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddBody attaches a body named name to parent through joint.
func (b *Builder) AddBody(name, parent string, joint Joint) *Builder {
	b.specs = append(b.specs, bodySpec{name: name, parent: parent, joint: joint})
	return b
}

// Build orders the bodies parent-before-child, ties broken by insertion
// order, and assigns their q and v segments.
func (b *Builder) Build() (*Tree, error) {
	ids := map[string]int64{WorldName: 0}
	for i, s := range b.specs {
		switch {
		case s.name == "":
			return nil, kerrors.TreeBuildError(s.name, fmt.Sprintf("body %d has no name", i+1))
		case s.name == s.parent:
			return nil, kerrors.TreeBuildError(s.name, "body is its own parent")
		}
		if _, dup := ids[s.name]; dup {
			return nil, kerrors.TreeBuildError(s.name, "duplicate body name")
		}
		ids[s.name] = int64(i + 1)
	}

	g := simple.NewDirectedGraph()
	for _, id := range ids {
		g.AddNode(simple.Node(id))
	}
	for _, s := range b.specs {
		pid, ok := ids[s.parent]
		if !ok {
			return nil, kerrors.TreeBuildError(s.name, fmt.Sprintf("unknown parent %q", s.parent))
		}
		g.SetEdge(g.NewEdge(simple.Node(pid), simple.Node(ids[s.name])))
	}

	order, err := topo.SortStabilized(g, func(nodes []graph.Node) {
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	})
	if err != nil {
		return nil, kerrors.Wrap(err, kerrors.ErrTreeBuild, "body graph has a cycle")
	}

	t := &Tree{
		bodies: make([]*Body, 0, len(order)),
		byName: make(map[string]int, len(order)),
	}
	index := make(map[int64]int, len(order))
	for _, n := range order {
		id := n.ID()
		var body *Body
		if id == 0 {
			body = &Body{name: WorldName, parent: -1, joint: Joint{Name: WorldName, Type: Fixed}}
		} else {
			s := b.specs[id-1]
			body = &Body{
				name:          s.name,
				parent:        index[ids[s.parent]],
				joint:         s.joint,
				positionStart: t.nq,
				velocityStart: t.nv,
			}
			t.nq += s.joint.NumPositions()
			t.nv += s.joint.NumVelocities()
		}
		body.tree = t
		body.index = len(t.bodies)
		index[id] = body.index
		t.byName[body.name] = body.index
		t.bodies = append(t.bodies, body)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}
