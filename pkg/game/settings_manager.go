package game

import (
	"fmt"

	"github.com/decker502/coinburst/pkg/logging"
	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器设置（窗口和 HUD），不包含任何粒子状态
type ViewerSettings struct {
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
	ShowHUD    bool `yaml:"showHUD"`    // 是否显示调试 HUD
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Fullscreen: false,
		ShowHUD:    true,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
	log          *zap.SugaredLogger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager, log *zap.SugaredLogger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		log:          logging.OrNop(log),
	}

	if err := sm.Load(); err != nil {
		sm.log.Warnw("failed to load settings, using defaults", "error", err)
	}
	return sm
}

// OpenSettingsStorage 打开 gdata 存储；失败时返回 nil 管理器和错误
func OpenSettingsStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open settings storage: %w", err)
	}
	return m, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	sm.log.Debugw("settings loaded", "fullscreen", loaded.Fullscreen, "showHUD", loaded.ShowHUD)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.log.Debug("settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowHUD 设置 HUD 显示
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetShowHUD(enabled bool) {
	sm.settings.ShowHUD = enabled
}

// Persistent 是否可以持久化
func (sm *SettingsManager) Persistent() bool {
	return sm.gdataManager != nil
}
