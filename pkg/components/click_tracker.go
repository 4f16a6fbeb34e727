package components

// ClickTrackerComponent 记录宠物在衰减窗口内收到的点击
// 超过窗口时长的点击在阈值判定前被剔除，因此只有快速连点会触发 Hurt/Dead
type ClickTrackerComponent struct {
	// Timestamps 每次点击的游戏时间(秒)，按时间升序
	Timestamps []float64

	// HurtFired 当前越阈是否已触发过 Hurt
	// 计数衰减到阈值以下后重新置 false，再次越阈才会再次触发
	HurtFired bool

	// Halted 追踪是否停止（死亡后为 true，Revive 前忽略所有点击）
	Halted bool
}

// Reset 清空点击历史并重新武装两个阈值（Revive 时调用）
func (c *ClickTrackerComponent) Reset() {
	c.Timestamps = c.Timestamps[:0]
	c.HurtFired = false
	c.Halted = false
}
