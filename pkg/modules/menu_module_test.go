package modules

import (
	"testing"

	"github.com/decker502/deskpet/pkg/types"
)

func newTestMenu(state MenuState, callbacks MenuCallbacks) *MenuModule {
	return NewMenuModule(nil, 1920, 1080, func() MenuState { return state }, callbacks)
}

func findItem(t *testing.T, m *MenuModule, label string) menuItem {
	t.Helper()
	for _, item := range m.items {
		if item.label == label {
			return item
		}
	}
	t.Fatalf("菜单中找不到 %q", label)
	return menuItem{}
}

func TestMenuOpenClampsToScreen(t *testing.T) {
	m := newTestMenu(MenuState{PetVisible: true}, MenuCallbacks{})

	m.Open(1900, 1070)
	if !m.IsVisible() {
		t.Fatal("Open 后菜单应可见")
	}
	if m.x+menuWidth > 1920 || m.y+m.height() > 1080 {
		t.Errorf("菜单应收缩进屏幕: (%f, %f)", m.x, m.y)
	}

	m.Close()
	if m.IsVisible() {
		t.Error("Close 后菜单应隐藏")
	}
}

func TestMenuLabelsFollowState(t *testing.T) {
	m := newTestMenu(MenuState{PetVisible: true, AudioEnabled: true}, MenuCallbacks{})
	m.Open(0, 0)
	findItem(t, m, "隐藏宠物")
	findItem(t, m, "关闭叫声")

	m = newTestMenu(MenuState{PetVisible: false, AudioEnabled: false}, MenuCallbacks{})
	m.Open(0, 0)
	findItem(t, m, "显示宠物")
	findItem(t, m, "开启叫声")
}

func TestMenuDisabledItems(t *testing.T) {
	m := newTestMenu(MenuState{
		PetVisible:    true,
		PetDead:       false,
		FoodAvailable: false,
		PoopAvailable: true,
		Species:       types.SpeciesCat,
	}, MenuCallbacks{})
	m.Open(0, 0)

	if findItem(t, m, "投放食物").enabled {
		t.Error("食物素材缺失时投放食物应禁用")
	}
	if !findItem(t, m, "投放便便").enabled {
		t.Error("便便素材可用时投放便便应启用")
	}
	if findItem(t, m, "复活宠物").enabled {
		t.Error("宠物存活时复活应禁用")
	}
	if findItem(t, m, "切换为小猫").enabled {
		t.Error("当前种类不应可再次选择")
	}
	if !findItem(t, m, "切换为小狗").enabled {
		t.Error("其他种类应可选择")
	}
}

func TestMenuReviveEnabledWhenDead(t *testing.T) {
	m := newTestMenu(MenuState{PetDead: true}, MenuCallbacks{})
	m.Open(0, 0)
	if !findItem(t, m, "复活宠物").enabled {
		t.Error("宠物死亡时复活应启用")
	}
	if findItem(t, m, "打开控制面板").enabled {
		t.Error("宠物死亡时控制面板应禁用")
	}
}

func TestMenuContainsPoint(t *testing.T) {
	m := newTestMenu(MenuState{}, MenuCallbacks{})
	if m.ContainsPoint(10, 10) {
		t.Error("未展开的菜单不应占据任何位置")
	}
	m.Open(100, 100)
	if !m.ContainsPoint(110, 110) {
		t.Error("菜单内的坐标应返回 true")
	}
	if m.ContainsPoint(100+menuWidth+1, 110) {
		t.Error("菜单外的坐标应返回 false")
	}
}
