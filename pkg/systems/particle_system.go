package systems

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/decker502/coinburst/internal/particle"
	"github.com/decker502/coinburst/pkg/components"
	"github.com/decker502/coinburst/pkg/config"
	"github.com/decker502/coinburst/pkg/ecs"
	"github.com/decker502/coinburst/pkg/logging"
)

// TextureLookup 按名字查找贴图；ok 为 false 表示贴图不存在
//
// *game.ResourceManager 和 *game.NameRegistry 都实现了该接口。
type TextureLookup interface {
	GetTexture(name string) (*ebiten.Image, bool)
}

// ParticleSystem owns the coin burst emitters and advances their particles.
//
// Each emitter is an entity with an EmitterComponent and a ContainerComponent;
// each particle is an entity with ParticleComponent, SpriteComponent and
// PositionComponent, attached as a child of its emitter's container.
//
// The system is driven by the Clock through EmitterEffect.AnimTick; it does
// not look at wall-clock time itself.
type ParticleSystem struct {
	entityManager *ecs.EntityManager
	textures      TextureLookup
	tuning        *config.CoinBurstConfig
	src           particle.Source
	log           *zap.SugaredLogger

	// 缺失贴图只警告一次
	warnedTextures map[string]bool
}

// NewParticleSystem creates a ParticleSystem. A nil tuning uses the defaults,
// a nil src uses the process-wide random source and a nil log discards output.
func NewParticleSystem(em *ecs.EntityManager, textures TextureLookup, tuning *config.CoinBurstConfig, src particle.Source, log *zap.SugaredLogger) *ParticleSystem {
	if tuning == nil {
		tuning = config.DefaultCoinBurstConfig()
	}
	if src == nil {
		src = particle.DefaultSource()
	}
	return &ParticleSystem{
		entityManager:  em,
		textures:       textures,
		tuning:         tuning,
		src:            src,
		log:            logging.OrNop(log),
		warnedTextures: make(map[string]bool),
	}
}

// SetTuning 热替换调参
//
// 随机范围在下一次随机化（回收）时生效，每帧常量立即生效。
// 已存在的发射器的时间窗口和粒子数量不变。
func (ps *ParticleSystem) SetTuning(cfg *config.CoinBurstConfig) {
	if cfg == nil {
		return
	}
	ps.tuning = cfg
	ps.log.Infow("tuning updated", "particles", cfg.ParticleCount, "gravity", cfg.Gravity, "xVelocity", cfg.XVelocity)
}

// Tuning 当前调参
func (ps *ParticleSystem) Tuning() *config.CoinBurstConfig {
	return ps.tuning
}

// NewEmitter 创建空发射器实体（容器 + EmitterComponent）
func (ps *ParticleSystem) NewEmitter(name string, start, duration time.Duration) ecs.EntityID {
	id := NewContainer(ps.entityManager)
	ps.entityManager.AddComponent(id, &components.EmitterComponent{
		Name:     name,
		Start:    start,
		Duration: duration,
	})
	return id
}

// NewCoinBurst 按当前调参创建金币发射器并挂到舞台上
func (ps *ParticleSystem) NewCoinBurst(stageID ecs.EntityID) (ecs.EntityID, error) {
	return ps.NewCoinBurstAt(stageID, ps.tuning.EffectStart())
}

// NewCoinBurstAt 同 NewCoinBurst，但指定时间窗口起点
func (ps *ParticleSystem) NewCoinBurstAt(stageID ecs.EntityID, start time.Duration) (ecs.EntityID, error) {
	id := ps.NewEmitter("CoinBurst", start, ps.tuning.EffectDuration())
	ps.GenerateParticles(id, ps.tuning.ParticleCount)

	if err := AddChild(ps.entityManager, stageID, id); err != nil {
		ps.DestroyEmitter(id)
		return ecs.InvalidEntity, fmt.Errorf("attach coin burst to stage: %w", err)
	}

	ps.log.Debugw("coin burst created", "emitter", id, "particles", ps.tuning.ParticleCount,
		"start", start, "duration", ps.tuning.EffectDuration())
	return id, nil
}

// GenerateParticles 为发射器生成 n 个粒子
//
// 每个粒子：默认贴图、中心点为贴图中心、随机缩放、位于屏幕中心、alpha 0、
// 随机重力（当前值和默认值相同）、旋转增量和水平速度。
func (ps *ParticleSystem) GenerateParticles(emitterID ecs.EntityID, n int) []ecs.EntityID {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.entityManager, emitterID)
	if !ok {
		ps.log.Warnw("GenerateParticles: entity is not an emitter", "entity", emitterID)
		return nil
	}

	cx, cy := config.ScreenCenter()
	created := make([]ecs.EntityID, 0, n)

	for i := 0; i < n; i++ {
		id := ps.entityManager.CreateEntity()

		sprite := &components.SpriteComponent{}
		ps.applyTexture(sprite, ps.tuning.DefaultSprite)
		scale := particle.RandomInRange(ps.src, ps.tuning.Size)
		sprite.ScaleX, sprite.ScaleY = scale, scale
		sprite.Alpha = 0

		p := &components.ParticleComponent{Emitter: emitterID}
		ps.RandomizeParticle(p)

		ps.entityManager.AddComponent(id, sprite)
		ps.entityManager.AddComponent(id, &components.PositionComponent{X: cx, Y: cy})
		ps.entityManager.AddComponent(id, p)

		if err := AddChild(ps.entityManager, emitterID, id); err != nil {
			ps.log.Errorw("attach particle", "particle", id, "error", err)
		}
		created = append(created, id)
	}

	emitter.Particles = append(emitter.Particles, created...)
	return created
}

// RandomizeParticle 重新随机重力（当前值和默认值）、旋转增量和水平速度
func (ps *ParticleSystem) RandomizeParticle(p *components.ParticleComponent) {
	gravity := particle.RandomInRange(ps.src, ps.tuning.Gravity)
	p.DefaultGravityAmount = gravity
	p.GravityAmount = gravity
	p.RotationDelta = particle.RandomInRange(ps.src, ps.tuning.Rotation)
	p.XVelocity = particle.RandomInRange(ps.src, ps.tuning.XVelocity)
}

// AnimTick advances every particle of the emitter by one frame.
//
//   - nt: normalized time in [0, 1) within the emitter's window
//   - lt: local time since the window start
//   - gt: global time of this frame
func (ps *ParticleSystem) AnimTick(emitterID ecs.EntityID, nt float64, lt time.Duration, gt time.Time) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.entityManager, emitterID)
	if !ok {
		return
	}
	emitter.Ticks++
	emitter.LastNormalizedTime = nt
	emitter.LastLocalTime = lt
	emitter.LastGlobalTime = gt

	cfg := ps.tuning
	frame := particle.FrameIndex(nt, cfg.AnimationFrames)
	textureName := particle.TextureName(cfg.TexturePrefix, frame)
	cx, cy := config.ScreenCenter()
	fade := cfg.FadeStep()

	for _, id := range emitter.Particles {
		p, ok := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		if !ok {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](ps.entityManager, id)
		if !ok {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		if !ok {
			continue
		}

		// 1. 动画帧
		p.FrameIndex = frame
		ps.applyTexture(sprite, textureName)

		// 2. 越界回收
		if pos.Y >= cfg.YLimit {
			pos.X, pos.Y = cx, cy
			sprite.Alpha = 0
			ps.RandomizeParticle(p)
			p.Recycles++
		}

		// 3. 淡入
		sprite.Alpha = math.Min(sprite.Alpha+fade, 1)

		// 4-5. 重力与水平速度
		pos.Y += p.GravityAmount * cfg.GravityScale
		pos.X += p.XVelocity

		// 6. 旋转
		sprite.Rotation += p.RotationDelta / cfg.RotationDivisor

		// 7. 重力累加
		p.GravityAmount += nt / cfg.GravityStepDivisor
		if cfg.MaxGravity > 0 && p.GravityAmount > cfg.MaxGravity {
			p.GravityAmount = cfg.MaxGravity
		}
	}
}

// applyTexture 设置精灵贴图；贴图不存在时保留原贴图并警告（每个名字一次）
func (ps *ParticleSystem) applyTexture(sprite *components.SpriteComponent, name string) {
	if sprite.TextureName == name {
		return
	}
	var (
		img *ebiten.Image
		ok  bool
	)
	if ps.textures != nil {
		img, ok = ps.textures.GetTexture(name)
	}
	if !ok {
		if !ps.warnedTextures[name] {
			ps.warnedTextures[name] = true
			ps.log.Warnw("texture doesn't exist", "texture", name)
		}
		return
	}

	sprite.TextureName = name
	sprite.Image = img
	if img != nil {
		b := img.Bounds()
		sprite.PivotX = float64(b.Dx()) / 2
		sprite.PivotY = float64(b.Dy()) / 2
	}
}

// ResetEmitter 把发射器的全部粒子恢复到刚创建时的状态（重新随机缩放和速度）
func (ps *ParticleSystem) ResetEmitter(emitterID ecs.EntityID) {
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](ps.entityManager, emitterID)
	if !ok {
		return
	}
	cx, cy := config.ScreenCenter()
	for _, id := range emitter.Particles {
		p, ok1 := ecs.GetComponent[*components.ParticleComponent](ps.entityManager, id)
		sprite, ok2 := ecs.GetComponent[*components.SpriteComponent](ps.entityManager, id)
		pos, ok3 := ecs.GetComponent[*components.PositionComponent](ps.entityManager, id)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		ps.applyTexture(sprite, ps.tuning.DefaultSprite)
		scale := particle.RandomInRange(ps.src, ps.tuning.Size)
		sprite.ScaleX, sprite.ScaleY = scale, scale
		sprite.Alpha = 0
		sprite.Rotation = 0
		pos.X, pos.Y = cx, cy
		ps.RandomizeParticle(p)
		p.FrameIndex = 0
		p.Recycles = 0
	}
	emitter.Ticks = 0
}

// DestroyEmitter 标记发射器、其全部粒子和容器待删除，并从父容器摘下
//
// 实体在 EntityManager.RemoveMarkedEntities 时真正移除。
func (ps *ParticleSystem) DestroyEmitter(emitterID ecs.EntityID) {
	em := ps.entityManager
	emitter, ok := ecs.GetComponent[*components.EmitterComponent](em, emitterID)
	if !ok {
		return
	}
	for _, id := range emitter.Particles {
		em.DestroyEntity(id)
	}
	emitter.Particles = nil
	if parent, ok := ecs.GetComponent[*components.ParentComponent](em, emitterID); ok {
		RemoveChild(em, parent.Parent, emitterID)
	}
	em.DestroyEntity(emitterID)
	ps.log.Debugw("emitter destroyed", "emitter", emitterID)
}

// Emitters 返回所有发射器实体
func (ps *ParticleSystem) Emitters() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.EmitterComponent](ps.entityManager)
}

// ParticleCount 返回所有发射器的粒子总数
func (ps *ParticleSystem) ParticleCount() int {
	total := 0
	for _, id := range ps.Emitters() {
		if e, ok := ecs.GetComponent[*components.EmitterComponent](ps.entityManager, id); ok {
			total += len(e.Particles)
		}
	}
	return total
}

// Effect 返回可注册到 Clock 的效果适配器
func (ps *ParticleSystem) Effect(emitterID ecs.EntityID) *EmitterEffect {
	return &EmitterEffect{system: ps, emitter: emitterID}
}

// EmitterEffect adapts one emitter to the Clock's Effect interface.
type EmitterEffect struct {
	system  *ParticleSystem
	emitter ecs.EntityID
}

// EmitterID 对应的发射器实体
func (e *EmitterEffect) EmitterID() ecs.EntityID { return e.emitter }

// Start 时间窗口起点；发射器已销毁时为 0
func (e *EmitterEffect) Start() time.Duration {
	if c, ok := ecs.GetComponent[*components.EmitterComponent](e.system.entityManager, e.emitter); ok {
		return c.Start
	}
	return 0
}

// Duration 时间窗口长度；发射器已销毁时为 0（Clock 跳过该效果）
func (e *EmitterEffect) Duration() time.Duration {
	if c, ok := ecs.GetComponent[*components.EmitterComponent](e.system.entityManager, e.emitter); ok {
		return c.Duration
	}
	return 0
}

// AnimTick 转发到 ParticleSystem.AnimTick
func (e *EmitterEffect) AnimTick(nt float64, lt time.Duration, gt time.Time) {
	e.system.AnimTick(e.emitter, nt, lt, gt)
}
