package components

// ToastComponent 屏幕提示信息（替代原生系统托盘气泡）
// 配合 LifetimeComponent 在若干秒后自动消失
type ToastComponent struct {
	Text string // 提示文本
}
