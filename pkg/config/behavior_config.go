package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// BehaviorConfig 宠物行为的可调参数
// 这些参数不是固定契约值：默认值来自原始实现的手感调校，
// 可通过 yaml 文件整体或部分覆盖
type BehaviorConfig struct {
	// MoveSpeed 基础移动速度（像素/秒）
	MoveSpeed float64 `yaml:"moveSpeed"`

	// RunSpeedMultiplier 奔跑（冲边、追食物）相对基础速度的倍率
	RunSpeedMultiplier float64 `yaml:"runSpeedMultiplier"`

	// SlideSpeedMultiplier 滑行相对基础速度的倍率
	SlideSpeedMultiplier float64 `yaml:"slideSpeedMultiplier"`

	// FrameInterval 动画帧间隔（秒）
	FrameInterval float64 `yaml:"frameInterval"`

	// BehaviorInterval 自主行为定时器间隔（秒）
	// 每次触发时按概率表选择新的随机行为
	BehaviorInterval float64 `yaml:"behaviorInterval"`

	// HurtClickThreshold 受伤点击阈值
	// 衰减窗口内的点击数超过该值时触发一次 Hurt
	HurtClickThreshold int `yaml:"hurtClickThreshold"`

	// DeadClickThreshold 死亡点击阈值
	// 衰减窗口内的点击数超过该值时进入 Dead 终态
	DeadClickThreshold int `yaml:"deadClickThreshold"`

	// ClickDecayWindow 点击计数的滑动衰减窗口（秒）
	// 只有窗口内的点击参与阈值判定，连点才会伤害宠物
	ClickDecayWindow float64 `yaml:"clickDecayWindow"`

	// EatDistanceOffset 进食距离修正（像素）
	// 进食阈值 = PetWidth/2 + FoodSize/2 - EatDistanceOffset
	EatDistanceOffset float64 `yaml:"eatDistanceOffset"`

	// PoopSpawnInterval 自动便便生成间隔（秒）
	PoopSpawnInterval float64 `yaml:"poopSpawnInterval"`

	// VoiceIntervalMin 随机叫声的最小间隔（秒）
	VoiceIntervalMin float64 `yaml:"voiceIntervalMin"`

	// VoiceIntervalMax 随机叫声的最大间隔（秒）
	VoiceIntervalMax float64 `yaml:"voiceIntervalMax"`
}

// DefaultBehaviorConfig 返回默认行为参数
// 数值对应原始实现：速度 3 像素/16ms tick ≈ 187 像素/秒，帧率 100ms
func DefaultBehaviorConfig() *BehaviorConfig {
	return &BehaviorConfig{
		MoveSpeed:            180.0,
		RunSpeedMultiplier:   2.5,
		SlideSpeedMultiplier: 1.5,
		FrameInterval:        0.1,
		BehaviorInterval:     3.0,
		HurtClickThreshold:   3,
		DeadClickThreshold:   10,
		ClickDecayWindow:     10.0,
		EatDistanceOffset:    10.0,
		PoopSpawnInterval:    15.0,
		VoiceIntervalMin:     5.0,
		VoiceIntervalMax:     15.0,
	}
}

// EatDistance 返回进食判定距离（宠物中心到食物中心）
func (c *BehaviorConfig) EatDistance() float64 {
	return PetWidth/2 + FoodSize/2 - c.EatDistanceOffset
}

// LoadBehaviorConfig 从 yaml 文件加载行为参数
// 文件不存在时返回默认参数（不视为错误）；文件存在但解析失败时返回错误。
// yaml 中省略的字段保留默认值
func LoadBehaviorConfig(path string) (*BehaviorConfig, error) {
	cfg := DefaultBehaviorConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[Config] 行为配置文件不存在，使用默认参数: %s", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("读取行为配置失败: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析行为配置失败: %w", err)
	}

	log.Printf("[Config] 已加载行为配置: %s", path)
	return cfg, nil
}
