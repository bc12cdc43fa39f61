// Package config provides YAML-based tuning for the simulation: scoring
// weights, projectile and plunger parameters, boss choreography constants
// and capture output.
package config

// Config contains every tunable value of a run.
type Config struct {
	Sim       SimConfig       `yaml:"sim"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Cart      CartConfig      `yaml:"cart"`
	Plunger   PlungerConfig   `yaml:"plunger"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Boss      BossConfig      `yaml:"boss"`
	Capture   CaptureConfig   `yaml:"capture"`
}

// SimConfig defines world-level parameters.
type SimConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Downward acceleration, units/s²
	CameraW     float64 `yaml:"camera_w"`     // Visible width in world units
	CameraH     float64 `yaml:"camera_h"`     // Visible height in world units
	CartSpeed   float64 `yaml:"cart_speed"`   // Horizontal speed of the cart
	LevelLength float64 `yaml:"level_length"` // Distance before the level ends
	Duration    float64 `yaml:"duration"`     // Headless run length in seconds
}

// ScoringConfig holds the points awarded per entity kind.
// Every award is multiplied by the combo of the entity granting it.
type ScoringConfig struct {
	Crate    int `yaml:"crate"`
	TNT      int `yaml:"tnt"`
	Bomb     int `yaml:"bomb"`
	Zeppelin int `yaml:"zeppelin"`
	Wall     int `yaml:"wall"`
	Tar      int `yaml:"tar"`
	Balloon  int `yaml:"balloon"`
	Bonus    int `yaml:"bonus"`
	BossHit  int `yaml:"boss_hit"`
}

// CartConfig defines the player avatar.
type CartConfig struct {
	CannonSpeed    float64 `yaml:"cannon_speed"`
	CannonLifetime float64 `yaml:"cannon_lifetime"`
	FireCooldown   float64 `yaml:"fire_cooldown"`
	AimStep        float64 `yaml:"aim_step"` // Radians per aim action
}

// PlungerConfig defines the grappling plunger.
type PlungerConfig struct {
	Speed           float64 `yaml:"speed"`
	MaxDistance     float64 `yaml:"max_distance"`
	BossMaxDistance float64 `yaml:"boss_max_distance"`
	ReturnDuration  float64 `yaml:"return_duration"`
	BalloonRange    float64 `yaml:"balloon_range"` // Attracted balloons closer than this survive cannonballs
}

// ExplosionConfig defines blast parameters.
type ExplosionConfig struct {
	Linger       float64 `yaml:"linger"`         // Seconds an explosion stays after its blast window
	ObstacleKill float64 `yaml:"obstacle_speed"` // Obstacle speed above which TNT explodes
	Planks       int     `yaml:"planks"`         // Planks per destroyed crate
}

// BossConfig holds the choreography constants of the boss encounter.
type BossConfig struct {
	MinCartDistance float64 `yaml:"min_cart_distance"`
	MaxX            float64 `yaml:"max_x"`
	MinY            float64 `yaml:"min_y"`
	MaxY            float64 `yaml:"max_y"`
	FlyY            float64 `yaml:"fly_y"`
	TrapDuration    float64 `yaml:"trap_duration"`
	DropSpeed       float64 `yaml:"drop_speed"`      // Horizontal units/s while placing a drop item
	DropFall        float64 `yaml:"drop_fall"`       // Downward speed given to a released item
	ButtonAngle     float64 `yaml:"button_angle"`    // Max tilt at which the button opens the trapdoor
	DeadDuration    float64 `yaml:"dead_duration"`   // Seconds of the final fall
	EndExplosion    float64 `yaml:"end_explosion"`   // Per-tick chance of a decorative explosion
	EndSound        float64 `yaml:"end_sound"`       // Per-tick chance of an explosion sound
	DropInterval    float64 `yaml:"drop_interval"`   // Seconds between two carried items
	FlyBobAmplitude float64 `yaml:"fly_bob"`         // Vertical amplitude of the fly loop
	InjuredAngle    float64 `yaml:"injured_angle"`   // Wobble amplitude while injured
	SafeAngle       float64 `yaml:"safe_angle"`      // Wobble amplitude once the trapdoor closes
	TransitionSlow  int     `yaml:"transition_slow"` // Module serial using the long entrance
}

// CaptureConfig controls best-action exports.
type CaptureConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}
