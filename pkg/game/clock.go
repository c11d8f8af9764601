package game

import (
	"errors"
	"time"

	"github.com/decker502/coinburst/pkg/logging"
	"go.uber.org/zap"
)

var (
	// ErrClockNotStarted 时钟尚未启动
	ErrClockNotStarted = errors.New("clock not started")
	// ErrClockStopped 时钟已停止
	ErrClockStopped = errors.New("clock stopped")
	// ErrNoEffects 没有注册任何有时长的效果
	ErrNoEffects = errors.New("no effects registered")
)

// Effect 可被 Clock 调度的效果
//
// Start/Duration 定义效果在时间线上的窗口 [Start, Start+Duration)。
// 窗口内的每一帧 Clock 调用 AnimTick：
//   - nt: 归一化时间 (lt / Duration)，范围 [0, 1)
//   - lt: 效果内的本地时间
//   - gt: 本帧的时间戳，取自 Clock 的 TimeProvider。使用 PausableTimeProvider 时
//     它是扣除暂停时长后的游戏时间，不是墙上时间
type Effect interface {
	Start() time.Duration
	Duration() time.Duration
	AnimTick(nt float64, lt time.Duration, gt time.Time)
}

// ClockState 时钟状态
type ClockState int

const (
	ClockNotStarted ClockState = iota
	ClockRunning
	ClockStopped
)

func (s ClockState) String() string {
	switch s {
	case ClockNotStarted:
		return "not-started"
	case ClockRunning:
		return "running"
	case ClockStopped:
		return "stopped"
	}
	return "unknown"
}

// Clock 持有已注册的效果，把时间映射为每个效果的 (nt, lt, gt) 并分发更新
//
// 时间线长度 totalDuration = max(start + duration)；时间线循环播放：
// lt = (now - t0) mod totalDuration。
//
// Clock 不是并发安全的，只能在游戏循环所在的 goroutine 中使用。
type Clock struct {
	tp  TimeProvider
	log *zap.SugaredLogger

	effects       []Effect
	totalDuration time.Duration

	state ClockState
	t0    time.Time
	frame time.Duration
	ticks uint64
}

// NewClock 创建时钟；tp 为 nil 时使用系统时间
func NewClock(tp TimeProvider, log *zap.SugaredLogger) *Clock {
	if tp == nil {
		tp = RealTimeProvider{}
	}
	return &Clock{
		tp:  tp,
		log: logging.OrNop(log),
	}
}

// AddEffect 注册效果并扩展时间线长度；运行中也可以注册
func (c *Clock) AddEffect(e Effect) {
	c.effects = append(c.effects, e)
	if end := e.Start() + e.Duration(); end > c.totalDuration {
		c.totalDuration = end
	}
	c.log.Debugw("effect added", "start", e.Start(), "duration", e.Duration(), "total", c.totalDuration)
}

// Start 开始计时；已在运行时无效果。停止后再次 Start 会重置 t0。
func (c *Clock) Start() {
	if c.state == ClockRunning {
		return
	}
	c.state = ClockRunning
	c.t0 = c.tp.Now()
	c.frame = 0
	c.log.Infow("clock started", "effects", len(c.effects), "total", c.totalDuration)
}

// Stop 清除运行标记，之后的 Tick 不再做任何工作
func (c *Clock) Stop() error {
	if c.state == ClockNotStarted {
		return ErrClockNotStarted
	}
	if c.state == ClockRunning {
		c.state = ClockStopped
		c.log.Infow("clock stopped", "ticks", c.ticks)
	}
	return nil
}

// Tick 推进一帧，返回本帧分发 AnimTick 的效果数量
//
// 未运行或时间线长度为 0 时不做任何工作。
func (c *Clock) Tick() int {
	if c.state != ClockRunning || c.totalDuration <= 0 {
		return 0
	}

	gt := c.tp.Now()
	elapsed := gt.Sub(c.t0)
	if elapsed < 0 {
		elapsed = 0
	}
	lt := elapsed % c.totalDuration
	c.frame = lt
	c.ticks++

	dispatched := 0
	for _, e := range c.effects {
		start, duration := e.Start(), e.Duration()
		if duration <= 0 || lt < start || lt >= start+duration {
			continue
		}
		elt := lt - start
		ent := float64(elt) / float64(duration)
		e.AnimTick(ent, elt, gt)
		dispatched++
	}
	return dispatched
}

// LocalTime 返回当前时间线位置（不分发更新）
func (c *Clock) LocalTime() (time.Duration, error) {
	switch c.state {
	case ClockNotStarted:
		return 0, ErrClockNotStarted
	case ClockStopped:
		return 0, ErrClockStopped
	}
	if c.totalDuration <= 0 {
		return 0, ErrNoEffects
	}
	elapsed := c.tp.Now().Sub(c.t0)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed % c.totalDuration, nil
}

// TotalDuration 时间线长度
func (c *Clock) TotalDuration() time.Duration { return c.totalDuration }

// State 当前状态
func (c *Clock) State() ClockState { return c.state }

// Running 是否在运行
func (c *Clock) Running() bool { return c.state == ClockRunning }

// Effects 返回已注册效果的副本
func (c *Clock) Effects() []Effect {
	out := make([]Effect, len(c.effects))
	copy(out, c.effects)
	return out
}

// Frame 最近一次 Tick 计算出的时间线位置
func (c *Clock) Frame() time.Duration { return c.frame }

// Ticks 运行以来的 Tick 次数
func (c *Clock) Ticks() uint64 { return c.ticks }
