package main

import (
	"errors"
	"flag"
	"log"

	"github.com/decker502/deskpet/pkg/app"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	assetsDir := flag.String("assets", "assets", "素材根目录")
	configPath := flag.String("config", "", "行为参数 yaml 路径（可选）")
	species := flag.String("species", "", "启动宠物种类 cat/dog（默认沿用上次设置）")
	verbose := flag.Bool("verbose", false, "输出运行日志")
	flag.Parse()

	a, err := app.New(app.Options{
		AssetsDir:  *assetsDir,
		ConfigPath: *configPath,
		Species:    *species,
		Verbose:    *verbose,
	})
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}

	w, h := a.ScreenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowTitle("DeskPet")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(false)

	err = ebiten.RunGameWithOptions(a, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
		InitUnfocused:     true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		a.Teardown()
		log.Fatalf("运行失败: %v", err)
	}
	if err == nil {
		// 窗口被外部关闭时也保存设置
		a.Teardown()
	}
}
