package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBehaviorConfig(t *testing.T) {
	cfg := DefaultBehaviorConfig()
	if cfg.MoveSpeed <= 0 {
		t.Error("默认移动速度应为正数")
	}
	if cfg.HurtClickThreshold >= cfg.DeadClickThreshold {
		t.Error("受伤阈值应小于死亡阈值")
	}
	if cfg.VoiceIntervalMin >= cfg.VoiceIntervalMax {
		t.Error("叫声间隔下限应小于上限")
	}
}

func TestEatDistance(t *testing.T) {
	cfg := DefaultBehaviorConfig()
	expected := PetWidth/2 + FoodSize/2 - cfg.EatDistanceOffset
	if got := cfg.EatDistance(); got != expected {
		t.Errorf("进食距离应为 %f，实际 %f", expected, got)
	}
}

func TestLoadBehaviorConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadBehaviorConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("文件不存在不应视为错误: %v", err)
	}
	if cfg.MoveSpeed != DefaultBehaviorConfig().MoveSpeed {
		t.Error("文件不存在时应使用默认参数")
	}
}

func TestLoadBehaviorConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "behavior.yaml")
	content := "moveSpeed: 240\nhurtClickThreshold: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	cfg, err := LoadBehaviorConfig(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.MoveSpeed != 240 {
		t.Errorf("moveSpeed 应被覆盖为 240，实际 %f", cfg.MoveSpeed)
	}
	if cfg.HurtClickThreshold != 5 {
		t.Errorf("hurtClickThreshold 应被覆盖为 5，实际 %d", cfg.HurtClickThreshold)
	}
	if cfg.DeadClickThreshold != DefaultBehaviorConfig().DeadClickThreshold {
		t.Error("未覆盖的字段应保留默认值")
	}
}

func TestLoadBehaviorConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("moveSpeed: [oops"), 0o644); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	if _, err := LoadBehaviorConfig(path); err == nil {
		t.Error("格式错误的配置应返回错误")
	}
}

func TestLoadBehaviorConfigEmptyPath(t *testing.T) {
	cfg, err := LoadBehaviorConfig("")
	if err != nil {
		t.Fatalf("空路径不应报错: %v", err)
	}
	if cfg == nil {
		t.Fatal("空路径应返回默认参数")
	}
}
