package components

// TimerComponent 通用计时器组件
// 用于处理需要时间延迟的行为（自主行为切换、便便生成、叫声间隔）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "poop_spawn"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
}

// Tick 推进计时器，到达目标时间时置位 IsReady
func (t *TimerComponent) Tick(deltaTime float64) {
	if t.IsReady {
		return
	}
	t.CurrentTime += deltaTime
	if t.CurrentTime >= t.TargetTime {
		t.IsReady = true
	}
}

// Restart 重置计时器并设置新的目标时间
func (t *TimerComponent) Restart(targetTime float64) {
	t.TargetTime = targetTime
	t.CurrentTime = 0
	t.IsReady = false
}
