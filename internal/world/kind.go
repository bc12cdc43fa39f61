package world

// Kind is the closed set of entity variants known to the simulation.
type Kind uint8

const (
	KindNone Kind = iota
	KindCart
	KindCannonball
	KindPlunger
	KindCrate
	KindTNT
	KindBomb
	KindBalloon
	KindZeppelin
	KindPlank
	KindExplosion
	KindTar
	KindWall
	KindBonus
	KindBoss
	KindObstacle
	KindDecoration
)

var kindNames = [...]string{
	KindNone:       "none",
	KindCart:       "cart",
	KindCannonball: "cannonball",
	KindPlunger:    "plunger",
	KindCrate:      "crate",
	KindTNT:        "tnt",
	KindBomb:       "bomb",
	KindBalloon:    "balloon",
	KindZeppelin:   "zeppelin",
	KindPlank:      "plank",
	KindExplosion:  "explosion",
	KindTar:        "tar",
	KindWall:       "wall",
	KindBonus:      "bonus",
	KindBoss:       "boss",
	KindObstacle:   "obstacle",
	KindDecoration: "decoration",
}

// String returns the lowercase kind name used in configs and logs.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a kind from its name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != KindNone {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// Attractable reports whether the plunger can grab entities of this kind.
func (k Kind) Attractable() bool {
	switch k {
	case KindBalloon, KindCrate, KindBomb, KindTNT:
		return true
	}
	return false
}

// State is the coarse lifecycle tag of an entity.
type State uint8

const (
	StateIdle State = iota
	StateFall
	StateHit
	StateExplode
	StateDead
	StateFly
	StateReturn
	StateSpatter
)

var stateNames = [...]string{
	StateIdle:    "idle",
	StateFall:    "fall",
	StateHit:     "hit",
	StateExplode: "explode",
	StateDead:    "dead",
	StateFly:     "fly",
	StateReturn:  "return",
	StateSpatter: "spatter",
}

// String returns a human-readable name for the state.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
