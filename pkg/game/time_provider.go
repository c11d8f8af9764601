package game

import (
	"sync"
	"time"
)

// TimeProvider 时间源
//
// Clock 通过 TimeProvider 读取 "当前时间"，测试中替换为 MockTimeProvider，
// 暂停时替换为 PausableTimeProvider。
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider 返回系统时间（带单调时钟读数）
type RealTimeProvider struct{}

// Now returns time.Now().
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// PausableTimeProvider wraps another provider and subtracts the time spent
// paused, so game time freezes while paused and resumes without a jump.
type PausableTimeProvider struct {
	mu          sync.RWMutex
	base        TimeProvider
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

// NewPausableTimeProvider 包装 base；base 为 nil 时使用系统时间
func NewPausableTimeProvider(base TimeProvider) *PausableTimeProvider {
	if base == nil {
		base = RealTimeProvider{}
	}
	return &PausableTimeProvider{base: base}
}

// Now 返回游戏时间；暂停期间返回暂停时刻的时间
func (p *PausableTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.paused {
		return p.pauseStart.Add(-p.totalPaused)
	}
	return p.base.Now().Add(-p.totalPaused)
}

// Pause 冻结游戏时间，重复调用无效果
func (p *PausableTimeProvider) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.paused {
		return
	}
	p.paused = true
	p.pauseStart = p.base.Now()
}

// Resume 恢复游戏时间，暂停时长累计到 totalPaused
func (p *PausableTimeProvider) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.paused {
		return
	}
	p.totalPaused += p.base.Now().Sub(p.pauseStart)
	p.paused = false
	p.pauseStart = time.Time{}
}

// Toggle 切换暂停状态，返回切换后是否暂停
func (p *PausableTimeProvider) Toggle() bool {
	if p.IsPaused() {
		p.Resume()
		return false
	}
	p.Pause()
	return true
}

// IsPaused 是否处于暂停状态
func (p *PausableTimeProvider) IsPaused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// TotalPaused 累计暂停时长（包含当前这次暂停）
func (p *PausableTimeProvider) TotalPaused() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := p.totalPaused
	if p.paused {
		total += p.base.Now().Sub(p.pauseStart)
	}
	return total
}

// MockTimeProvider provides a controllable time source for tests and the
// headless chart tool.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a mock provider starting at startTime.
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time.
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time.
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the current time forward by d.
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
