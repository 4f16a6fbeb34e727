// Package modules 实现叠加在场景之上的 UI 模块
// 模块自行处理输入并通过回调结构体把命令交还给场景，
// 模块之间以及模块与系统之间没有直接依赖
package modules

import (
	"image/color"

	"github.com/decker502/deskpet/pkg/types"
	"github.com/decker502/deskpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	menuWidth      = 200.0
	menuItemHeight = 28.0
	menuPadding    = 6.0
)

// MenuState 构建菜单时的应用状态快照
type MenuState struct {
	PetVisible    bool
	PetDead       bool
	AudioEnabled  bool
	FoodAvailable bool
	PoopAvailable bool
	Species       types.PetSpecies
}

// MenuCallbacks 菜单命令回调
type MenuCallbacks struct {
	OnToggleVisible    func()
	OnOpenControlPanel func()
	OnToggleAudio      func()
	OnAddFood          func()
	OnClearFood        func()
	OnAddPoop          func()
	OnClearPoop        func()
	OnRevive           func()
	OnSetSpecies       func(species types.PetSpecies)
	OnExit             func()
}

type menuItem struct {
	label   string
	enabled bool
	action  func()
}

// MenuModule 右键上下文菜单
// 在光标位置展开，列出全部宠物命令；不可用的命令（素材缺失、
// 宠物存活时的复活）显示为灰色禁用项
type MenuModule struct {
	fontFace     *text.GoTextFace
	screenWidth  float64
	screenHeight float64
	stateFn      func() MenuState
	callbacks    MenuCallbacks

	visible bool
	x, y    float64
	items   []menuItem
}

// NewMenuModule 创建菜单模块
// stateFn 在每次打开菜单时被调用，用于刷新各项的文案和可用性
func NewMenuModule(fontFace *text.GoTextFace, screenWidth, screenHeight float64, stateFn func() MenuState, callbacks MenuCallbacks) *MenuModule {
	return &MenuModule{
		fontFace:     fontFace,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		stateFn:      stateFn,
		callbacks:    callbacks,
	}
}

// IsVisible 返回菜单是否展开
func (m *MenuModule) IsVisible() bool {
	return m.visible
}

// ContainsPoint 返回坐标是否落在展开的菜单上
func (m *MenuModule) ContainsPoint(x, y float64) bool {
	if !m.visible {
		return false
	}
	return utils.PointInRect(x, y, m.x, m.y, menuWidth, m.height())
}

func (m *MenuModule) height() float64 {
	return float64(len(m.items))*menuItemHeight + menuPadding*2
}

// Open 在指定位置展开菜单（自动收缩进屏幕范围）
func (m *MenuModule) Open(x, y float64) {
	m.buildItems()
	m.x = utils.Clamp(x, 0, m.screenWidth-menuWidth)
	m.y = utils.Clamp(y, 0, m.screenHeight-m.height())
	m.visible = true
}

// Close 收起菜单
func (m *MenuModule) Close() {
	m.visible = false
}

// buildItems 按当前应用状态生成菜单项
func (m *MenuModule) buildItems() {
	state := m.stateFn()

	visibleLabel := "隐藏宠物"
	if !state.PetVisible {
		visibleLabel = "显示宠物"
	}
	audioLabel := "关闭叫声"
	if !state.AudioEnabled {
		audioLabel = "开启叫声"
	}

	m.items = []menuItem{
		{label: visibleLabel, enabled: true, action: m.callbacks.OnToggleVisible},
		{label: "打开控制面板", enabled: !state.PetDead, action: m.callbacks.OnOpenControlPanel},
		{label: audioLabel, enabled: true, action: m.callbacks.OnToggleAudio},
		{label: "投放食物", enabled: state.FoodAvailable && !state.PetDead, action: m.callbacks.OnAddFood},
		{label: "清空食物", enabled: state.FoodAvailable, action: m.callbacks.OnClearFood},
		{label: "投放便便", enabled: state.PoopAvailable, action: m.callbacks.OnAddPoop},
		{label: "清空便便", enabled: state.PoopAvailable, action: m.callbacks.OnClearPoop},
		{label: "复活宠物", enabled: state.PetDead, action: m.callbacks.OnRevive},
	}
	for _, species := range types.AllSpecies {
		sp := species
		label := "切换为" + sp.DisplayName()
		m.items = append(m.items, menuItem{
			label:   label,
			enabled: sp != state.Species,
			action: func() {
				if m.callbacks.OnSetSpecies != nil {
					m.callbacks.OnSetSpecies(sp)
				}
			},
		})
	}
	m.items = append(m.items, menuItem{label: "退出", enabled: true, action: m.callbacks.OnExit})
}

// Update 处理菜单输入
func (m *MenuModule) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		cx, cy := ebiten.CursorPosition()
		m.Open(float64(cx), float64(cy))
		return
	}
	if !m.visible {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.Close()
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}

	cx, cy := ebiten.CursorPosition()
	mx, my := float64(cx), float64(cy)
	if !m.ContainsPoint(mx, my) {
		m.Close()
		return
	}

	idx := int((my - m.y - menuPadding) / menuItemHeight)
	if idx < 0 || idx >= len(m.items) {
		return
	}
	item := m.items[idx]
	m.Close()
	if item.enabled && item.action != nil {
		item.action()
	}
}

// Draw 绘制菜单
func (m *MenuModule) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	vector.DrawFilledRect(screen, float32(m.x), float32(m.y), float32(menuWidth), float32(m.height()), color.RGBA{30, 30, 30, 235}, true)

	cx, cy := ebiten.CursorPosition()
	for i, item := range m.items {
		itemY := m.y + menuPadding + float64(i)*menuItemHeight

		if item.enabled && utils.PointInRect(float64(cx), float64(cy), m.x, itemY, menuWidth, menuItemHeight) {
			vector.DrawFilledRect(screen, float32(m.x), float32(itemY), float32(menuWidth), float32(menuItemHeight), color.RGBA{70, 70, 90, 255}, true)
		}

		if m.fontFace == nil {
			continue
		}
		textColor := color.RGBA{230, 230, 230, 255}
		if !item.enabled {
			textColor = color.RGBA{120, 120, 120, 255}
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(m.x+12, itemY+5)
		op.ColorScale.ScaleWithColor(textColor)
		text.Draw(screen, item.label, m.fontFace, op)
	}
}
