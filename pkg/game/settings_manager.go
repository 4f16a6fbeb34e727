package game

import (
	"fmt"
	"log"

	"github.com/decker502/deskpet/pkg/types"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PetSettings 应用设置
// 只持久化应用层设置（音频开关、音量、宠物种类），
// 宠物的模拟状态（位置、点击数、物品）永远不会被保存
type PetSettings struct {
	AudioEnabled bool    `yaml:"audioEnabled"` // 叫声开关
	VoiceVolume  float64 `yaml:"voiceVolume"`  // 叫声音量 0.0 ~ 1.0
	Species      string  `yaml:"species"`      // 宠物种类（"cat" / "dog"）
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PetSettings {
	return &PetSettings{
		AudioEnabled: true,
		VoiceVolume:  0.8,
		Species:      types.SpeciesCat.String(),
	}
}

// SettingsManager 设置管理器
// 负责应用设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *PetSettings   // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
// gdataManager 为 nil 时进入降级模式：设置只存在于内存中
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
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

	var loaded PetSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
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

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PetSettings {
	return sm.settings
}

// SetAudioEnabled 设置叫声开关
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetAudioEnabled(enabled bool) {
	sm.settings.AudioEnabled = enabled
}

// SetVoiceVolume 设置叫声音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetVoiceVolume(volume float64) {
	sm.settings.VoiceVolume = clampVolume(volume)
}

// SetSpecies 设置宠物种类
func (sm *SettingsManager) SetSpecies(species types.PetSpecies) {
	sm.settings.Species = species.String()
}

// SpeciesSetting 返回设置中的宠物种类
func (sm *SettingsManager) SpeciesSetting() types.PetSpecies {
	return types.SpeciesFromString(sm.settings.Species)
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
