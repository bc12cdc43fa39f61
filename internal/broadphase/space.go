// Package broadphase finds touching entities with a Chipmunk space.
//
// Every entity gets a body whose shapes are sensors: the space integrates
// positions and reports overlaps but never pushes bodies apart. Gameplay
// reactions are left to the collision dispatchers.
package broadphase

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

const sensorType cp.CollisionType = 1

// Overlap is a pair of touching entities. Parts are empty when the whole
// entity box touched.
type Overlap struct {
	A, B         world.Handle
	PartA, PartB string
}

type shapeRef struct {
	h    world.Handle
	part string
	seq  int
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
}

type pair struct {
	a, b shapeRef
}

// Space mirrors the world into a Chipmunk space.
type Space struct {
	space  *cp.Space
	bodies map[world.Handle]*bodyInfo
	refs   map[*cp.Shape]shapeRef
	seq    int
	found  []pair
}

// New creates an empty space without gravity. Gravity is applied by the
// caller to the entities that need it.
func New() *Space {
	s := &Space{
		space:  cp.NewSpace(),
		bodies: make(map[world.Handle]*bodyInfo),
		refs:   make(map[*cp.Shape]shapeRef),
	}
	s.space.SetGravity(cp.Vector{})

	handler := s.space.NewCollisionHandler(sensorType, sensorType)
	handler.UserData = s
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sp, ok := userData.(*Space)
		if !ok {
			return true
		}
		a, b := arb.Shapes()
		ra, okA := sp.refs[a]
		rb, okB := sp.refs[b]
		if okA && okB {
			sp.found = append(sp.found, pair{a: ra, b: rb})
		}
		return true
	}
	return s
}

// Len returns the number of mirrored entities.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Step mirrors the world, advances free entities by their velocity over dt
// and returns the overlaps found at their new positions. Entities for which
// free reports false keep their position. Overlaps are ordered by the age
// of their shapes so runs replay identically.
func (s *Space) Step(w *world.World, dt float64, free func(e *world.Entity) bool) []Overlap {
	s.prune(w)

	var moved []*world.Entity
	w.Each(func(e *world.Entity) {
		info, ok := s.sync(e)
		if !ok {
			return
		}
		info.body.SetPosition(vec(e.Pos))
		if free(e) {
			info.body.SetVelocity(e.Vel.X, e.Vel.Y)
			moved = append(moved, e)
		} else {
			info.body.SetVelocity(0, 0)
		}
	})

	s.found = s.found[:0]
	s.space.Step(dt)

	for _, e := range moved {
		if info, ok := s.bodies[e.Handle()]; ok {
			p := info.body.Position()
			e.Pos = core.V(p.X, p.Y)
		}
	}
	return s.overlaps()
}

// Remove drops the body of h.
func (s *Space) Remove(h world.Handle) {
	info, ok := s.bodies[h]
	if !ok {
		return
	}
	for _, shape := range info.shapes {
		s.space.RemoveShape(shape)
		delete(s.refs, shape)
	}
	s.space.RemoveBody(info.body)
	delete(s.bodies, h)
}

func (s *Space) prune(w *world.World) {
	for h := range s.bodies {
		if !w.Alive(h) {
			s.Remove(h)
		}
	}
}

// sync returns the body of e, creating it on first sight. Decorations and
// shapeless entities have no body.
func (s *Space) sync(e *world.Entity) (*bodyInfo, bool) {
	if info, ok := s.bodies[e.Handle()]; ok {
		return info, true
	}
	if e.Kind == world.KindDecoration {
		return nil, false
	}

	mass := e.Mass
	if mass <= 0 {
		mass = 1
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(vec(e.Pos))
	info := &bodyInfo{body: body}

	if e.Zoned() {
		for _, p := range e.Parts {
			if p.Size.X <= 0 || p.Size.Y <= 0 {
				continue
			}
			bb := cp.BB{
				L: p.Offset.X - p.Size.X/2,
				B: p.Offset.Y - p.Size.Y/2,
				R: p.Offset.X + p.Size.X/2,
				T: p.Offset.Y + p.Size.Y/2,
			}
			info.shapes = append(info.shapes, s.track(cp.NewBox2(body, bb, 0), e.Handle(), p.Name))
		}
	} else if e.Size.X > 0 && e.Size.Y > 0 {
		info.shapes = append(info.shapes, s.track(cp.NewBox(body, e.Size.X, e.Size.Y, 0), e.Handle(), ""))
	}
	if len(info.shapes) == 0 {
		return nil, false
	}

	s.space.AddBody(body)
	for _, shape := range info.shapes {
		s.space.AddShape(shape)
	}
	s.bodies[e.Handle()] = info
	return info, true
}

func (s *Space) track(shape *cp.Shape, h world.Handle, part string) *cp.Shape {
	shape.SetSensor(true)
	shape.SetCollisionType(sensorType)
	s.seq++
	s.refs[shape] = shapeRef{h: h, part: part, seq: s.seq}
	return shape
}

func (s *Space) overlaps() []Overlap {
	if len(s.found) == 0 {
		return nil
	}
	for i, p := range s.found {
		if p.b.seq < p.a.seq {
			s.found[i] = pair{a: p.b, b: p.a}
		}
	}
	sort.Slice(s.found, func(i, j int) bool {
		if s.found[i].a.seq != s.found[j].a.seq {
			return s.found[i].a.seq < s.found[j].a.seq
		}
		return s.found[i].b.seq < s.found[j].b.seq
	})

	out := make([]Overlap, 0, len(s.found))
	for _, p := range s.found {
		out = append(out, Overlap{A: p.a.h, B: p.b.h, PartA: p.a.part, PartB: p.b.part})
	}
	return out
}

func vec(v core.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
