package game

import (
	"log"

	"github.com/decker502/deskpet/pkg/types"
)

// AudioManager 音频管理器
// 职责：
//   - 播放宠物叫声（每种宠物一个语音片段，随机间隔触发）
//   - 与设置联动：音量与开关来自 SettingsManager
//
// 播放是 fire-and-forget 的：Rewind 后 Play 立即返回，
// 由 Ebitengine 的音频线程完成实际输出
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager
}

// NewAudioManager 创建新的音频管理器
// sm 可为 nil（此时视为音频开启、音量 1.0）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// Enabled 返回叫声是否开启
func (am *AudioManager) Enabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().AudioEnabled
}

// PlayVoice 播放指定种类的叫声
// 音频关闭、素材缺失时返回 false（不视为错误）
func (am *AudioManager) PlayVoice(species types.PetSpecies) bool {
	if !am.Enabled() {
		return false
	}

	player, err := am.resourceManager.LoadVoicePlayer(species)
	if err != nil {
		log.Printf("[AudioManager] 叫声不可用: %v", err)
		return false
	}

	volume := 1.0
	if am.settingsManager != nil {
		volume = am.settingsManager.GetSettings().VoiceVolume
	}
	player.SetVolume(volume)

	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] 叫声重绕失败: %v", err)
		return false
	}
	player.Play()
	return true
}

// StopVoice 停止正在播放的叫声（死亡、进入手动控制时调用）
func (am *AudioManager) StopVoice(species types.PetSpecies) {
	player, err := am.resourceManager.LoadVoicePlayer(species)
	if err != nil {
		return
	}
	if player.IsPlaying() {
		player.Pause()
	}
}
