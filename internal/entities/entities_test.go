package entities

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-coaster/internal/collision"
	"github.com/vovakirdan/tui-coaster/internal/combo"
	"github.com/vovakirdan/tui-coaster/internal/config"
	"github.com/vovakirdan/tui-coaster/internal/core"
	"github.com/vovakirdan/tui-coaster/internal/movement"
	"github.com/vovakirdan/tui-coaster/internal/world"
)

type recorder struct {
	sounds []string
	anims  []string
}

func (r *recorder) Sound(name string, _ core.Vec) {
	r.sounds = append(r.sounds, name)
}

func (r *recorder) Animation(_ world.Handle, name string) {
	r.anims = append(r.anims, name)
}

func (r *recorder) played(name string) int {
	n := 0
	for _, s := range r.sounds {
		if s == name {
			n++
		}
	}
	return n
}

func newTestEnv() (*Env, *combo.Tally, *recorder) {
	tally := combo.NewTally(64)
	ctx := &core.SimContext{Camera: core.NewRect(0, 0, 1600, 900)}
	env := NewEnv(world.New(), movement.NewComposer(), tally, ctx, config.Default(), 1)
	rec := &recorder{}
	env.Effects = rec
	return env, tally, rec
}

// touch resolves a contact the way the tick loop does: a against b, then
// b against a.
func touch(env *Env, a, b *world.Entity) {
	env.Collide(a, b, collision.Between(a, b, "", ""))
	env.Collide(b, a, collision.Between(b, a, "", ""))
}

func ball(env *Env, pos core.Vec, c uint) *world.Entity {
	return env.Spawn(world.Spec{
		Kind:  world.KindCannonball,
		Pos:   pos,
		Size:  core.V(16, 16),
		Vel:   core.V(300, 0),
		Combo: c,
		Data:  &cannonballData{lifetime: 3},
	})
}

func TestCannonballChainsIntoCrate(t *testing.T) {
	env, tally, rec := newTestEnv()
	crate := env.Spawn(PropSpec(world.KindCrate, core.V(500, 20)))
	b := ball(env, core.V(500, 20), 3)

	touch(env, crate, b)

	if crate.Combo != 4 {
		t.Errorf("crate combo = %d, expected 4", crate.Combo)
	}
	if crate.State != world.StateExplode {
		t.Errorf("crate state = %v, expected explode", crate.State)
	}
	if !b.Gone() {
		t.Error("cannonball should be destroyed")
	}
	if got, want := env.World.Count(world.KindPlank), env.Cfg.Explosion.Planks; got != want {
		t.Errorf("planks = %d, expected %d", got, want)
	}
	if got, want := tally.Total(), 4*env.Cfg.Scoring.Crate; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}
	if rec.played("crate") != 1 {
		t.Errorf("crate sound played %d times, expected 1", rec.played("crate"))
	}
}

func TestCrateExplodesOnce(t *testing.T) {
	env, tally, _ := newTestEnv()
	crate := env.Spawn(PropSpec(world.KindCrate, core.V(500, 20)))
	touch(env, crate, ball(env, core.V(500, 20), 3))

	score := tally.Total()
	planks := env.World.Count(world.KindPlank)

	second := ball(env, core.V(500, 20), 7)
	touch(env, crate, second)
	ex := env.Spawn(world.Spec{Kind: world.KindExplosion, Pos: crate.Pos, Size: core.V(80, 80), Combo: 9, Data: &explosionData{duration: 1}})
	touch(env, crate, ex)

	if crate.Combo != 4 {
		t.Errorf("crate combo = %d, expected 4", crate.Combo)
	}
	if tally.Total() != score {
		t.Errorf("Total() = %d, expected %d", tally.Total(), score)
	}
	if got := env.World.Count(world.KindPlank); got != planks {
		t.Errorf("planks = %d, expected %d", got, planks)
	}
	if second.Gone() {
		t.Error("a ball hitting an exploded crate should not be spent")
	}

	env.Progress(crate, explodeDuration+0.01)
	if !crate.Gone() {
		t.Error("exploded crate should be removed after its explode time")
	}
}

func TestCartBreaksCrateWithoutScore(t *testing.T) {
	env, tally, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 200))
	crate := env.Spawn(OnGround(world.KindCrate, 110))
	crate.Combo = 2

	touch(env, crate, cart)

	if crate.Combo != 0 {
		t.Errorf("crate combo = %d, expected 0", crate.Combo)
	}
	if !Exploded(crate) {
		t.Error("crate should explode")
	}
	if d, _ := Cart(cart); d.Hits != 1 {
		t.Errorf("cart hits = %d, expected 1", d.Hits)
	}
	if tally.Total() != 0 || len(tally.Awards()) != 0 {
		t.Errorf("no score expected, got total %d awards %v", tally.Total(), tally.Awards())
	}
}

func TestPlungerSeedsAndBringsItemBack(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	p, ok := env.LaunchPlunger(cart)
	if !ok {
		t.Fatal("LaunchPlunger() = false, expected true")
	}
	if _, again := env.LaunchPlunger(cart); again {
		t.Error("only one plunger may be out")
	}

	crate := env.Spawn(PropSpec(world.KindCrate, p.Pos))
	touch(env, p, crate)

	if crate.Combo != 1 {
		t.Errorf("attracted combo = %d, expected 1", crate.Combo)
	}
	if !crate.Attracted || !Returning(p) {
		t.Fatal("plunger should hold the crate and return")
	}

	env.Moves.Update(env.World, env.Cfg.Plunger.ReturnDuration+0.1)

	if !p.Gone() {
		t.Error("plunger should be removed once back")
	}
	if !crate.Gone() || !crate.Taken {
		t.Error("cart should have taken the crate")
	}
	if d, _ := Cart(cart); d.Taken != 1 {
		t.Errorf("cart taken = %d, expected 1", d.Taken)
	}
	if _, ok := env.LaunchPlunger(cart); !ok {
		t.Error("plunger should be available again")
	}
}

func TestAttractedItemKeepsGrabDistance(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	p, _ := env.LaunchPlunger(cart)

	crate := env.Spawn(PropSpec(world.KindCrate, p.Pos.Add(core.V(10, -20))))
	touch(env, p, crate)

	p.Pos = p.Pos.Add(core.V(-50, 30))
	env.Moves.Update(env.World, 0)

	if got, want := crate.Pos.Sub(p.Pos), core.V(10, -20); math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("crate offset = %v, expected %v", got, want)
	}
}

func TestExplosionTracksFromSpawnPoint(t *testing.T) {
	env, _, _ := newTestEnv()
	zep := env.Spawn(PropSpec(world.KindZeppelin, core.V(400, 300)))
	ex := env.Explode(core.V(420, 280), Blast{Level: 1, Track: zep.Handle()})

	zep.Pos = core.V(500, 350)
	env.Moves.Update(env.World, 0.05)

	if math.Abs(ex.Pos.X-520) > 1e-9 || math.Abs(ex.Pos.Y-330) > 1e-9 {
		t.Errorf("explosion position = %v, expected (520, 330)", ex.Pos)
	}
}

func TestPlungerReturnsAtMaxDistance(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	p, _ := env.LaunchPlunger(cart)

	p.Pos = p.Pos.Add(core.V(env.Cfg.Plunger.MaxDistance, 0))
	env.Progress(p, 1.0/60)
	if !Returning(p) {
		t.Error("plunger beyond max distance should return")
	}

	env.Ctx.BossLevel = true
	cart.Data.(*CartData).Plunger.Clear()
	env.Kill(p)
	env.World.Sweep()
	p2, _ := env.LaunchPlunger(cart)
	if got := p2.Data.(*plungerData).maxDistance; got != env.Cfg.Plunger.BossMaxDistance {
		t.Errorf("boss level max distance = %v, expected %v", got, env.Cfg.Plunger.BossMaxDistance)
	}
}

func TestTNTStagesAndLatch(t *testing.T) {
	env, tally, _ := newTestEnv()
	tnt := env.Spawn(PropSpec(world.KindTNT, core.V(500, 20)))
	touch(env, tnt, ball(env, core.V(500, 20), 1))

	if tnt.Combo != 2 {
		t.Errorf("tnt combo = %d, expected 2", tnt.Combo)
	}
	if got := env.World.Count(world.KindExplosion); got != 1 {
		t.Errorf("explosions = %d, expected 1", got)
	}

	touch(env, tnt, ball(env, core.V(500, 20), 5))
	if tnt.Combo != 2 || tally.Total() != 2*env.Cfg.Scoring.TNT {
		t.Errorf("second hit changed tnt: combo %d total %d", tnt.Combo, tally.Total())
	}

	env.Progress(tnt, tntStage)
	if got := env.World.Count(world.KindExplosion); got != 2 {
		t.Errorf("explosions after first stage = %d, expected 2", got)
	}
	if got := env.World.Count(world.KindPlank); got != env.Cfg.Explosion.Planks {
		t.Errorf("planks = %d, expected %d", got, env.Cfg.Explosion.Planks)
	}
	env.Progress(tnt, tntStage)
	if got := env.World.Count(world.KindExplosion); got != 3 {
		t.Errorf("explosions after last stage = %d, expected 3", got)
	}
	if !tnt.Gone() {
		t.Error("tnt should be removed after its last blast")
	}
}

func TestTNTMergesWithBomb(t *testing.T) {
	env, tally, _ := newTestEnv()
	tnt := env.Spawn(PropSpec(world.KindTNT, core.V(500, 20)))
	bomb := env.Spawn(PropSpec(world.KindBomb, core.V(500, 20)))
	bomb.Combo = 2

	touch(env, tnt, bomb)

	if tnt.Combo != 3 || bomb.Combo != 2 {
		t.Errorf("combos = (%d, %d), expected (3, 2)", tnt.Combo, bomb.Combo)
	}
	if !Exploded(tnt) || !Exploded(bomb) {
		t.Error("both should explode")
	}
	want := 3*env.Cfg.Scoring.TNT + 2*env.Cfg.Scoring.Bomb
	if tally.Total() != want {
		t.Errorf("Total() = %d, expected %d", tally.Total(), want)
	}
}

func TestPlankForwardsCombo(t *testing.T) {
	tests := []struct {
		kind world.Kind
	}{
		{world.KindTNT},
		{world.KindBalloon},
		{world.KindTar},
		{world.KindCrate},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			env, _, _ := newTestEnv()
			var target *world.Entity
			if tt.kind == world.KindTar {
				target = env.Spawn(TarSpec(500, 80))
			} else {
				target = env.Spawn(PropSpec(tt.kind, core.V(500, 5)))
			}
			plank := env.Spawn(world.Spec{Kind: world.KindPlank, Pos: target.Pos, Size: core.V(30, 8), Combo: 4, Data: &debrisData{lifetime: 3}})

			touch(env, target, plank)

			if tt.kind == world.KindCrate {
				if Exploded(target) {
					t.Error("planks bounce off crates")
				}
				return
			}
			if target.Combo != 5 {
				t.Errorf("combo = %d, expected 5", target.Combo)
			}
			if !Exploded(target) && !target.Gone() {
				t.Error("target should explode")
			}
		})
	}
}

func TestBombHitsCartUnlessAttracted(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	held := env.Spawn(OnGround(world.KindBomb, 100))
	held.Attracted = true
	touch(env, held, cart)
	if Exploded(held) {
		t.Error("attracted bomb should not explode on the cart")
	}

	bomb := env.Spawn(OnGround(world.KindBomb, 100))
	bomb.Combo = 3
	touch(env, bomb, cart)
	if !Exploded(bomb) || bomb.Combo != 0 {
		t.Errorf("bomb exploded=%v combo=%d, expected true 0", Exploded(bomb), bomb.Combo)
	}
	if d, _ := Cart(cart); d.Hits != 1 {
		t.Errorf("cart hits = %d, expected 1", d.Hits)
	}
}

func TestBombDamagesWall(t *testing.T) {
	env, _, _ := newTestEnv()
	wall := env.Spawn(WallSpec(500, 300))
	bomb := env.Spawn(PropSpec(world.KindBomb, core.V(490, 250)))
	bomb.Combo = 2

	touch(env, bomb, wall)

	if wall.Combo != 3 {
		t.Errorf("wall combo = %d, expected 3", wall.Combo)
	}
	if got := Impacts(wall); got != [3]int{0, 0, 1} {
		t.Errorf("Impacts() = %v, expected [0 0 1]", got)
	}
}

func TestWallBreaksAfterThreeImpacts(t *testing.T) {
	env, tally, _ := newTestEnv()
	wall := env.Spawn(WallSpec(500, 300))

	for i := 0; i < 3; i++ {
		b := ball(env, core.V(490, 50), 1)
		touch(env, wall, b)
		if !b.Gone() {
			t.Errorf("ball %d should be spent on the wall", i)
		}
		if i < 2 && wall.Gone() {
			t.Fatalf("wall broke after %d hits", i+1)
		}
	}

	if !wall.Gone() {
		t.Fatal("wall should break on the third impact")
	}
	if wall.Combo != 2 {
		t.Errorf("wall combo = %d, expected 2", wall.Combo)
	}
	if got, want := tally.Total(), 2*env.Cfg.Scoring.Wall; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}
}

func TestCannonballChainsIntoWall(t *testing.T) {
	env, _, _ := newTestEnv()
	wall := env.Spawn(WallSpec(500, 300))

	touch(env, wall, ball(env, core.V(490, 50), 3))

	if wall.Combo != 4 {
		t.Errorf("wall combo = %d, expected 4", wall.Combo)
	}
}

func TestWallCountsExplosionOnce(t *testing.T) {
	env, _, _ := newTestEnv()
	wall := env.Spawn(WallSpec(500, 300))
	ex := env.Explode(core.V(300, 150), Blast{Level: 5, Combo: 1})

	touch(env, wall, ex)
	touch(env, wall, ex)

	if got := Impacts(wall); got != [3]int{1, 1, 1} {
		t.Errorf("Impacts() = %v, expected [1 1 1]", got)
	}
	if wall.Combo != 2 {
		t.Errorf("wall combo = %d, expected 2", wall.Combo)
	}
}

func TestZeppelinDropPassesCombo(t *testing.T) {
	env, _, _ := newTestEnv()
	zep := env.SpawnZeppelin(core.V(800, 500), world.KindCrate)
	item, ok := env.Carried(zep)
	if !ok {
		t.Fatal("zeppelin should carry an item")
	}
	if !env.Moves.Attached(item.Handle()) {
		t.Error("carried item should follow the zeppelin")
	}

	zep.Combo = 3
	dropped, ok := env.DropCarried(zep)
	if !ok || dropped != item {
		t.Fatal("DropCarried() should release the item")
	}
	if item.Combo != 3 {
		t.Errorf("item combo = %d, expected 3", item.Combo)
	}
	if env.Moves.Attached(item.Handle()) {
		t.Error("dropped item should fall freely")
	}
	if _, ok := env.Carried(zep); ok {
		t.Error("zeppelin should be empty")
	}
}

func TestZeppelinExplodesOnce(t *testing.T) {
	env, tally, _ := newTestEnv()
	zep := env.SpawnZeppelin(core.V(800, 500), world.KindTNT)
	item, _ := env.Carried(zep)

	touch(env, zep, ball(env, zep.Pos, 2))
	touch(env, zep, ball(env, zep.Pos, 6))

	if zep.Combo != 3 || item.Combo != 3 {
		t.Errorf("combos = (%d, %d), expected (3, 3)", zep.Combo, item.Combo)
	}
	if got := env.World.Count(world.KindExplosion); got != zeppelinBlasts {
		t.Errorf("explosions = %d, expected %d", got, zeppelinBlasts)
	}
	if got, want := tally.Total(), 3*env.Cfg.Scoring.Zeppelin; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}
}

func TestPlungerDropsZeppelinCargo(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	zep := env.SpawnZeppelin(core.V(800, 500), world.KindBomb)
	item, _ := env.Carried(zep)
	p, _ := env.LaunchPlunger(cart)
	p.Pos = zep.Pos

	touch(env, p, zep)

	if zep.Combo != 1 || item.Combo != 1 {
		t.Errorf("combos = (%d, %d), expected (1, 1)", zep.Combo, item.Combo)
	}
	if !Returning(p) {
		t.Error("plunger should return")
	}
}

func TestExplosionIgnitesZeppelin(t *testing.T) {
	env, _, _ := newTestEnv()
	zep := env.SpawnZeppelin(core.V(800, 500), world.KindNone)
	ex := env.Explode(zep.Pos, Blast{Level: 2, Combo: 4})

	touch(env, ex, zep)
	if zep.Combo != 5 || !Exploded(zep) {
		t.Errorf("zeppelin combo=%d exploded=%v, expected 5 true", zep.Combo, Exploded(zep))
	}

	late := env.SpawnZeppelin(core.V(800, 500), world.KindNone)
	ex.Age = 1
	touch(env, ex, late)
	if Exploded(late) {
		t.Error("explosion past its window should not ignite")
	}
}

func TestCannonballSeedsTar(t *testing.T) {
	env, tally, _ := newTestEnv()
	tar := env.Spawn(TarSpec(500, 80))
	b := ball(env, tar.Pos, 1)

	touch(env, b, tar)

	if !tar.Gone() {
		t.Error("tar should be destroyed")
	}
	if tar.Combo != 2 {
		t.Errorf("tar combo = %d, expected 2", tar.Combo)
	}
	if b.Combo != 3 {
		t.Errorf("ball combo = %d, expected 3", b.Combo)
	}
	if math.Abs(b.Vel.X-100) > 1e-9 {
		t.Errorf("ball speed = %v, expected 100", b.Vel.X)
	}
	if got, want := tally.Total(), 2*env.Cfg.Scoring.Tar; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}
}

func TestCannonballChainsThroughTar(t *testing.T) {
	tests := []struct {
		name    string
		ballIn  uint
		tarOut  uint
		ballOut uint
	}{
		{"seed", 0, 1, 2},
		{"fresh ball", 1, 2, 3},
		{"second tar", 3, 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _ := newTestEnv()
			tar := env.Spawn(TarSpec(500, 80))
			b := ball(env, tar.Pos, tt.ballIn)

			touch(env, b, tar)

			if tar.Combo != tt.tarOut || b.Combo != tt.ballOut {
				t.Errorf("combos = (tar %d, ball %d), expected (%d, %d)", tar.Combo, b.Combo, tt.tarOut, tt.ballOut)
			}
		})
	}
}

func TestZeroComboSourceKeepsCombo(t *testing.T) {
	env, tally, _ := newTestEnv()
	crate := env.Spawn(PropSpec(world.KindCrate, core.V(500, 20)))
	crate.Combo = 1
	ex := env.Spawn(world.Spec{Kind: world.KindExplosion, Pos: crate.Pos, Size: core.V(80, 80), Data: &explosionData{duration: 1}})

	touch(env, crate, ex)

	if !Exploded(crate) {
		t.Fatal("crate should explode inside the blast")
	}
	if crate.Combo != 1 {
		t.Errorf("crate combo = %d, expected 1", crate.Combo)
	}
	if got, want := tally.Total(), env.Cfg.Scoring.Crate; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}
}

func TestZeroComboBombKeepsWallCombo(t *testing.T) {
	env, _, _ := newTestEnv()
	wall := env.Spawn(WallSpec(500, 300))
	wall.Combo = 3
	bomb := env.Spawn(PropSpec(world.KindBomb, core.V(490, 250)))

	touch(env, bomb, wall)

	if wall.Combo != 3 {
		t.Errorf("wall combo = %d, expected 3", wall.Combo)
	}
}

func TestBalloonShieldedByPlunger(t *testing.T) {
	env, _, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	p, _ := env.LaunchPlunger(cart)
	balloon := env.Spawn(PropSpec(world.KindBalloon, p.Pos))
	touch(env, p, balloon)

	touch(env, balloon, ball(env, balloon.Pos, 1))
	if Exploded(balloon) {
		t.Error("balloon next to the plunger should be shielded")
	}

	free := env.Spawn(PropSpec(world.KindBalloon, core.V(900, 600)))
	touch(env, free, ball(env, free.Pos, 1))
	if !free.Gone() {
		t.Error("free balloon should pop")
	}
}

func TestTakenBalloonFliesAway(t *testing.T) {
	env, tally, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	p, _ := env.LaunchPlunger(cart)
	balloon := env.Spawn(PropSpec(world.KindBalloon, p.Pos))
	touch(env, p, balloon)

	env.Moves.Update(env.World, env.Cfg.Plunger.ReturnDuration+0.1)

	if balloon.Gone() || balloon.State != world.StateFly {
		t.Fatalf("taken balloon should fly, state %v gone %v", balloon.State, balloon.Gone())
	}
	if got, want := tally.Total(), env.Cfg.Scoring.Balloon; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}

	start := balloon.Pos.Y
	env.Progress(balloon, balloonFlyTime/2)
	if got := balloon.Pos.Y - start; math.Abs(got-balloonFlyHeight/2) > 1e-6 {
		t.Errorf("rise = %v, expected %v", got, balloonFlyHeight/2)
	}
	env.Progress(balloon, balloonFlyTime/2)
	if !balloon.Gone() {
		t.Error("balloon should be removed at the end of its flight")
	}
}

func TestBonusPaysOnce(t *testing.T) {
	env, tally, _ := newTestEnv()
	cart := env.Spawn(CartSpec(100, 0))
	bonus := env.Spawn(PropSpec(world.KindBonus, cart.Pos))

	touch(env, bonus, cart)
	touch(env, bonus, cart)

	if got, want := tally.Total(), env.Cfg.Scoring.Bonus; got != want {
		t.Errorf("Total() = %d, expected %d", got, want)
	}

	for i := 0; i < 70 && !bonus.Gone(); i++ {
		env.Progress(bonus, 1.0/60)
	}
	if !bonus.Gone() {
		t.Error("bonus should be removed after its pickup animation")
	}
}

func TestFireCooldown(t *testing.T) {
	env, _, rec := newTestEnv()
	cart := env.Spawn(CartSpec(100, 200))

	b, ok := env.Fire(cart)
	if !ok {
		t.Fatal("Fire() = false, expected true")
	}
	if b.Combo != 1 || b.Owner != cart.Handle() {
		t.Errorf("cannonball combo %d owner %v", b.Combo, b.Owner)
	}
	if _, ok := env.Fire(cart); ok {
		t.Error("Fire() during cooldown should fail")
	}

	env.Progress(cart, env.Cfg.Cart.FireCooldown+0.01)
	if _, ok := env.Fire(cart); !ok {
		t.Error("Fire() after cooldown should succeed")
	}
	if rec.played("cannon") != 2 {
		t.Errorf("cannon sound played %d times, expected 2", rec.played("cannon"))
	}
}

func TestCannonballExpires(t *testing.T) {
	env, _, _ := newTestEnv()
	b := ball(env, core.V(0, 100), 1)

	env.Progress(b, 2)
	if b.Gone() {
		t.Fatal("ball expired early")
	}
	env.Progress(b, 1.5)
	if !b.Gone() {
		t.Error("ball should expire after its lifetime")
	}
}

func TestDetonateUnknownKind(t *testing.T) {
	env, _, _ := newTestEnv()
	obstacle := env.Spawn(ObstacleSpec(core.V(0, 0), core.V(10, 10)))
	if env.Detonate(obstacle) {
		t.Error("obstacles cannot explode")
	}
}
