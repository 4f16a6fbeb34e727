// Package app 组装并驱动整个桌宠应用
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/scenes"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
)

const sampleRate = 48000

// Options 应用启动选项
type Options struct {
	// AssetsDir 素材根目录
	AssetsDir string
	// ConfigPath 行为参数 yaml 路径，空表示使用默认参数
	ConfigPath string
	// Species 启动种类覆盖（"cat"/"dog"），空表示沿用上次设置
	Species string
	// Verbose 是否输出运行日志
	Verbose bool
}

// App 实现 ebiten.Game，持有场景管理器并以固定步长驱动模拟
type App struct {
	sceneManager *game.SceneManager
	petScene     *scenes.PetScene
	screenWidth  int
	screenHeight int
}

// New 组装应用：资源、设置、音频、场景
// 默认种类（猫）的素材目录缺失视为致命错误
func New(opts Options) (*App, error) {
	if !opts.Verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadBehaviorConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	audioContext := audio.NewContext(sampleRate)
	resourceManager := game.NewResourceManager(audioContext, opts.AssetsDir)
	if !resourceManager.HasSpeciesAssets(types.SpeciesCat) {
		return nil, fmt.Errorf("默认宠物素材目录缺失: %s/cat", opts.AssetsDir)
	}

	// gdata 打开失败时进入降级模式（设置不持久化）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "deskpet"})
	if err != nil {
		log.Printf("[App] 本地存储不可用，设置将不会被保存: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("初始化设置失败: %w", err)
	}
	if opts.Species != "" {
		settingsManager.SetSpecies(types.SpeciesFromString(opts.Species))
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager)

	monitorW, monitorH := ebiten.Monitor().Size()
	if monitorW <= 0 || monitorH <= 0 {
		monitorW, monitorH = 1920, 1080
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	scene, err := scenes.NewPetScene(resourceManager, audioManager, settingsManager, cfg, rng, float64(monitorW), float64(monitorH))
	if err != nil {
		return nil, err
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		petScene:     scene,
		screenWidth:  monitorW,
		screenHeight: monitorH,
	}, nil
}

// ScreenSize 返回应用的逻辑屏幕尺寸（即显示器尺寸）
func (a *App) ScreenSize() (int, int) {
	return a.screenWidth, a.screenHeight
}

// Update 以固定步长驱动当前场景
func (a *App) Update() error {
	const deltaTime = 1.0 / 60.0
	a.sceneManager.Update(deltaTime)

	if a.petScene.ExitRequested() {
		a.sceneManager.Teardown()
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制当前场景
// 背景保持透明，只有宠物和 UI 可见
func (a *App) Draw(screen *ebiten.Image) {
	screen.Clear()
	a.sceneManager.Draw(screen)
}

// Layout 逻辑分辨率与窗口一致
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.screenWidth, a.screenHeight
}

// Teardown 退出前清理（窗口被直接关闭时由 main 调用）
func (a *App) Teardown() {
	a.sceneManager.Teardown()
}
