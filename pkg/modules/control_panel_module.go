package modules

import (
	"image/color"

	"github.com/decker502/deskpet/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelWidth   = 220.0
	panelHeight  = 180.0
	buttonSize   = 44.0
	buttonMargin = 8.0
)

// ControlPanelCallbacks 控制面板命令回调
type ControlPanelCallbacks struct {
	// OnMove 方向移动，dx/dy 取 -1/0/1；两者皆 0 等价于停止
	OnMove  func(dx, dy float64)
	OnStop  func()
	OnJump  func()
	OnSlide func()
	// OnOpen/OnClose 面板开关时通知场景进入/退出手动模式
	OnOpen  func()
	OnClose func()
}

type panelButton struct {
	label  string
	x, y   float64 // 面板内相对坐标
	dx, dy float64 // 方向按钮的方向分量
	isDir  bool
	action func() // 非方向按钮的动作
}

// ControlPanelModule 手动控制面板
// 提供方向键、停止、跳跃、滑行按钮；面板打开期间也接受键盘输入
// （方向键/WASD 移动，空格跳跃，Shift 滑行，Esc 关闭）
type ControlPanelModule struct {
	fontFace     *text.GoTextFace
	screenWidth  float64
	screenHeight float64
	callbacks    ControlPanelCallbacks

	open    bool
	x, y    float64
	buttons []panelButton

	// lastDX/lastDY 上一 tick 生效的方向，用于检测方向变化
	lastDX, lastDY float64
	// heldButton 鼠标按住的方向按钮下标，-1 表示无
	heldButton int
}

// NewControlPanelModule 创建控制面板，固定停靠在屏幕右下角
func NewControlPanelModule(fontFace *text.GoTextFace, screenWidth, screenHeight float64, callbacks ControlPanelCallbacks) *ControlPanelModule {
	m := &ControlPanelModule{
		fontFace:     fontFace,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		callbacks:    callbacks,
		x:            screenWidth - panelWidth - 20,
		y:            screenHeight - panelHeight - 20,
		heldButton:   -1,
	}
	m.buildButtons()
	return m
}

func (m *ControlPanelModule) buildButtons() {
	// 十字方向键布局
	padX := 20.0
	padY := 36.0
	m.buttons = []panelButton{
		{label: "上", x: padX + buttonSize + buttonMargin, y: padY, dx: 0, dy: -1, isDir: true},
		{label: "左", x: padX, y: padY + buttonSize + buttonMargin, dx: -1, dy: 0, isDir: true},
		{label: "停", x: padX + buttonSize + buttonMargin, y: padY + buttonSize + buttonMargin,
			action: func() { m.invokeStop() }},
		{label: "右", x: padX + (buttonSize+buttonMargin)*2, y: padY + buttonSize + buttonMargin, dx: 1, dy: 0, isDir: true},
		{label: "下", x: padX + buttonSize + buttonMargin, y: padY + (buttonSize+buttonMargin)*2, dx: 0, dy: 1, isDir: true},
		{label: "跳", x: padX + (buttonSize+buttonMargin)*3 + 4, y: padY,
			action: func() { m.invoke(m.callbacks.OnJump) }},
		{label: "滑", x: padX + (buttonSize+buttonMargin)*3 + 4, y: padY + buttonSize + buttonMargin,
			action: func() { m.invoke(m.callbacks.OnSlide) }},
	}
}

func (m *ControlPanelModule) invoke(fn func()) {
	if fn != nil {
		fn()
	}
}

func (m *ControlPanelModule) invokeStop() {
	m.lastDX, m.lastDY = 0, 0
	m.invoke(m.callbacks.OnStop)
}

// IsOpen 返回面板是否打开
func (m *ControlPanelModule) IsOpen() bool {
	return m.open
}

// ContainsPoint 返回坐标是否落在打开的面板上
func (m *ControlPanelModule) ContainsPoint(x, y float64) bool {
	if !m.open {
		return false
	}
	return utils.PointInRect(x, y, m.x, m.y, panelWidth, panelHeight)
}

// Open 打开面板并进入手动模式
func (m *ControlPanelModule) Open() {
	if m.open {
		return
	}
	m.open = true
	m.lastDX, m.lastDY = 0, 0
	m.heldButton = -1
	m.invoke(m.callbacks.OnOpen)
}

// Close 关闭面板并退出手动模式
func (m *ControlPanelModule) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.heldButton = -1
	m.invoke(m.callbacks.OnClose)
}

// Update 处理面板输入
func (m *ControlPanelModule) Update() {
	if !m.open {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.Close()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.invoke(m.callbacks.OnJump)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft) || inpututil.IsKeyJustPressed(ebiten.KeyShiftRight) {
		m.invoke(m.callbacks.OnSlide)
	}

	m.updateMouse()
	m.applyDirection()
}

// updateMouse 处理面板按钮的按下与释放
func (m *ControlPanelModule) updateMouse() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		mx, my := float64(cx), float64(cy)
		for i, btn := range m.buttons {
			if !utils.PointInRect(mx, my, m.x+btn.x, m.y+btn.y, buttonSize, buttonSize) {
				continue
			}
			if btn.isDir {
				m.heldButton = i
			} else if btn.action != nil {
				btn.action()
			}
			break
		}
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		m.heldButton = -1
	}
}

// applyDirection 合成键盘与按钮的方向输入，方向变化时下发命令
func (m *ControlPanelModule) applyDirection() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += 1
	}
	if m.heldButton >= 0 {
		btn := m.buttons[m.heldButton]
		dx, dy = btn.dx, btn.dy
	}

	if dx == m.lastDX && dy == m.lastDY {
		return
	}
	m.lastDX, m.lastDY = dx, dy
	if dx == 0 && dy == 0 {
		m.invoke(m.callbacks.OnStop)
		return
	}
	if m.callbacks.OnMove != nil {
		m.callbacks.OnMove(dx, dy)
	}
}

// Draw 绘制面板
func (m *ControlPanelModule) Draw(screen *ebiten.Image) {
	if !m.open {
		return
	}

	vector.DrawFilledRect(screen, float32(m.x), float32(m.y), float32(panelWidth), float32(panelHeight), color.RGBA{30, 30, 30, 235}, true)
	m.drawLabel(screen, "控制面板", m.x+12, m.y+8)

	cx, cy := ebiten.CursorPosition()
	for i, btn := range m.buttons {
		bx, by := m.x+btn.x, m.y+btn.y
		bg := color.RGBA{60, 60, 70, 255}
		hovered := utils.PointInRect(float64(cx), float64(cy), bx, by, buttonSize, buttonSize)
		if hovered || m.heldButton == i {
			bg = color.RGBA{90, 90, 110, 255}
		}
		vector.DrawFilledRect(screen, float32(bx), float32(by), float32(buttonSize), float32(buttonSize), bg, true)
		m.drawLabel(screen, btn.label, bx+13, by+12)
	}
}

func (m *ControlPanelModule) drawLabel(screen *ebiten.Image, label string, x, y float64) {
	if m.fontFace == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, label, m.fontFace, op)
}
