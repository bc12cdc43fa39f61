package entities

import (
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

var propSizes = map[world.Kind]core.Vec{
	world.KindCrate:   core.V(40, 40),
	world.KindTNT:     core.V(40, 40),
	world.KindBomb:    core.V(30, 30),
	world.KindBalloon: core.V(40, 60),
	world.KindBonus:   core.V(24, 24),
}

// PropSpec describes a loose prop of kind k centered on pos.
func PropSpec(k world.Kind, pos core.Vec) world.Spec {
	size, ok := propSizes[k]
	if !ok {
		size = core.V(40, 40)
	}
	spec := world.Spec{Kind: k, Pos: pos, Size: size}

	switch k {
	case world.KindCrate, world.KindTNT, world.KindBomb:
		spec.Data = &propData{}
	case world.KindBalloon:
		spec.Weightless = true
		spec.Data = &balloonData{}
	case world.KindBonus:
		spec.Weightless = true
		spec.Data = &bonusData{}
	}
	return spec
}

// OnGround places a prop of kind k standing on the ground at x.
func OnGround(k world.Kind, x float64) world.Spec {
	spec := PropSpec(k, core.Vec{})
	spec.Pos = core.V(x, spec.Size.Y/2)
	return spec
}

// WallSpec describes a breakable wall standing at x.
func WallSpec(x, height float64) world.Spec {
	return world.Spec{
		Kind:   world.KindWall,
		Pos:    core.V(x, height/2),
		Size:   core.V(40, height),
		Static: true,
		Data:   &wallData{},
	}
}

// TarSpec describes a tar pool on the ground at x.
func TarSpec(x, width float64) world.Spec {
	return world.Spec{
		Kind:   world.KindTar,
		Pos:    core.V(x, 5),
		Size:   core.V(width, 10),
		Static: true,
		Data:   &propData{},
	}
}

// ObstacleSpec describes an inert block.
func ObstacleSpec(pos, size core.Vec) world.Spec {
	return world.Spec{
		Kind:   world.KindObstacle,
		Pos:    pos,
		Size:   size,
		Static: true,
		Mass:   50,
	}
}
