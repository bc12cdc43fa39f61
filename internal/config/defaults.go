package config

import (
	_ "embed"
)

//go:embed defaults/coaster.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sim: SimConfig{
			Gravity:     900,
			CameraW:     1600,
			CameraH:     900,
			CartSpeed:   200,
			LevelLength: 6000,
			Duration:    60,
		},
		Scoring: ScoringConfig{
			Crate:    500,
			TNT:      500,
			Bomb:     100,
			Zeppelin: 750,
			Wall:     1500,
			Tar:      100,
			Balloon:  200,
			Bonus:    1000,
			BossHit:  1000,
		},
		Cart: CartConfig{
			CannonSpeed:    1100,
			CannonLifetime: 3,
			FireCooldown:   0.35,
			AimStep:        0.05,
		},
		Plunger: PlungerConfig{
			Speed:           1200,
			MaxDistance:     1000,
			BossMaxDistance: 1300,
			ReturnDuration:  0.5,
			BalloonRange:    200,
		},
		Explosion: ExplosionConfig{
			Linger:       1,
			ObstacleKill: 200,
			Planks:       7,
		},
		Boss: BossConfig{
			MinCartDistance: 400,
			MaxX:            1200,
			MinY:            -650,
			MaxY:            400,
			FlyY:            335,
			TrapDuration:    7,
			DropSpeed:       400,
			DropFall:        300,
			ButtonAngle:     0.2,
			DeadDuration:    10,
			EndExplosion:    0.3,
			EndSound:        0.05,
			DropInterval:    4,
			FlyBobAmplitude: 50,
			InjuredAngle:    0.06,
			SafeAngle:       0.05,
			TransitionSlow:  6,
		},
		Capture: CaptureConfig{
			Enabled: false,
			Dir:     "~/.coaster/captures",
		},
	}
}
