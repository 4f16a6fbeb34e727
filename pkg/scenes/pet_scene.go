// Package scenes 实现游戏场景
package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"reflect"

	"github.com/decker502/deskpet/pkg/components"
	"github.com/decker502/deskpet/pkg/config"
	"github.com/decker502/deskpet/pkg/ecs"
	"github.com/decker502/deskpet/pkg/entities"
	"github.com/decker502/deskpet/pkg/game"
	"github.com/decker502/deskpet/pkg/modules"
	"github.com/decker502/deskpet/pkg/systems"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// PetScene 桌宠主场景
// 持有实体管理器、全部系统与 UI 模块，是所有宠物命令的入口。
// 右键菜单和控制面板通过回调把命令交给场景，场景再委托给对应系统
type PetScene struct {
	entityManager   *ecs.EntityManager
	cfg             *config.BehaviorConfig
	resourceManager *game.ResourceManager
	audioManager    *game.AudioManager
	settingsManager *game.SettingsManager
	rng             *rand.Rand
	screenWidth     float64
	screenHeight    float64

	petID           ecs.EntityID
	behaviorTimerID ecs.EntityID
	poopTimerID     ecs.EntityID
	voiceTimerID    ecs.EntityID

	timerSystem       *systems.TimerSystem
	inputSystem       *systems.InputSystem
	behaviorSystem    *systems.BehaviorSystem
	movementSystem    *systems.MovementSystem
	interactionSystem *systems.InteractionSystem
	animationSystem   *systems.AnimationSystem
	spawnSystem       *systems.SpawnSystem
	lifetimeSystem    *systems.LifetimeSystem
	renderSystem      *systems.RenderSystem

	menu         *modules.MenuModule
	controlPanel *modules.ControlPanelModule

	// wasDead 上一 tick 的死亡状态，用于检测死亡瞬间（停掉叫声）
	wasDead       bool
	exitRequested bool
}

// NewPetScene 创建主场景
// 按设置中的种类加载宠物素材，失败时回退到默认种类（猫）
func NewPetScene(rm *game.ResourceManager, am *game.AudioManager, sm *game.SettingsManager, cfg *config.BehaviorConfig, rng *rand.Rand, screenWidth, screenHeight float64) (*PetScene, error) {
	species := sm.SpeciesSetting()
	frames, err := rm.LoadPetFrames(species)
	if err != nil && species != types.SpeciesCat {
		log.Printf("[PetScene] %s 素材不可用，回退到默认种类: %v", species, err)
		species = types.SpeciesCat
		sm.SetSpecies(species)
		frames, err = rm.LoadPetFrames(species)
	}
	if err != nil {
		return nil, fmt.Errorf("加载宠物素材失败: %w", err)
	}

	s := &PetScene{
		entityManager:   ecs.NewEntityManager(),
		cfg:             cfg,
		resourceManager: rm,
		audioManager:    am,
		settingsManager: sm,
		rng:             rng,
		screenWidth:     screenWidth,
		screenHeight:    screenHeight,
	}

	// 初始位置随机
	x := rng.Float64() * (screenWidth - config.PetWidth)
	y := rng.Float64() * (screenHeight - config.PetHeight)
	s.petID = entities.NewPetEntity(s.entityManager, cfg, species, frames, x, y)

	s.behaviorTimerID = entities.NewTimerEntity(s.entityManager, "behavior", cfg.BehaviorInterval)
	s.poopTimerID = entities.NewTimerEntity(s.entityManager, "poop_spawn", cfg.PoopSpawnInterval)
	s.voiceTimerID = entities.NewTimerEntity(s.entityManager, "voice", s.nextVoiceInterval())

	s.timerSystem = systems.NewTimerSystem(s.entityManager)
	s.interactionSystem = systems.NewInteractionSystem(s.entityManager, cfg)
	s.behaviorSystem = systems.NewBehaviorSystem(s.entityManager, cfg, rng, screenWidth, screenHeight, s.behaviorTimerID)
	s.movementSystem = systems.NewMovementSystem(s.entityManager, cfg, screenWidth, screenHeight)
	s.animationSystem = systems.NewAnimationSystem(s.entityManager, frames)
	s.spawnSystem = systems.NewSpawnSystem(s.entityManager, cfg, rng, rm, screenWidth, screenHeight, s.poopTimerID)
	s.lifetimeSystem = systems.NewLifetimeSystem(s.entityManager)

	fontFace := rm.LoadFontFace(16)
	s.renderSystem = systems.NewRenderSystem(s.entityManager, fontFace)

	s.menu = modules.NewMenuModule(fontFace, screenWidth, screenHeight, s.menuState, modules.MenuCallbacks{
		OnToggleVisible:    s.ToggleVisible,
		OnOpenControlPanel: s.OpenControlPanel,
		OnToggleAudio:      s.ToggleAudio,
		OnAddFood:          s.AddRandomFood,
		OnClearFood:        s.ClearAllFood,
		OnAddPoop:          s.AddRandomPoop,
		OnClearPoop:        s.ClearAllPoop,
		OnRevive:           s.Revive,
		OnSetSpecies:       s.SetSpecies,
		OnExit:             s.RequestExit,
	})
	s.controlPanel = modules.NewControlPanelModule(fontFace, screenWidth, screenHeight, modules.ControlPanelCallbacks{
		OnMove:  s.behaviorSystem.CommandMove,
		OnStop:  s.behaviorSystem.CommandStop,
		OnJump:  s.behaviorSystem.CommandJump,
		OnSlide: s.behaviorSystem.CommandSlide,
		OnOpen: func() {
			s.behaviorSystem.SetManualMode(true)
			if pet := s.petComponent(); pet != nil {
				s.audioManager.StopVoice(pet.Species)
			}
		},
		OnClose: func() { s.behaviorSystem.SetManualMode(false) },
	})

	s.inputSystem = systems.NewInputSystem(s.entityManager, s.interactionSystem, screenWidth, screenHeight, s.uiCapture)

	log.Printf("[PetScene] 场景就绪，宠物种类: %s", species)
	return s, nil
}

// uiCapture 判断光标位置是否被 UI 占用
// 菜单展开时吞掉全部左键（点击空白处用于收起菜单）
func (s *PetScene) uiCapture(x, y float64) bool {
	return s.menu.IsVisible() || s.controlPanel.ContainsPoint(x, y)
}

// menuState 为菜单构建应用状态快照
func (s *PetScene) menuState() modules.MenuState {
	pet := s.petComponent()
	return modules.MenuState{
		PetVisible:    pet != nil && !pet.Hidden,
		PetDead:       pet != nil && pet.IsDead(),
		AudioEnabled:  s.audioManager.Enabled(),
		FoodAvailable: s.resourceManager.FoodAvailable(),
		PoopAvailable: s.resourceManager.PoopAvailable(),
		Species:       s.settingsManager.SpeciesSetting(),
	}
}

func (s *PetScene) petComponent() *components.PetComponent {
	comp, ok := s.entityManager.GetComponent(s.petID, reflect.TypeOf(&components.PetComponent{}))
	if !ok {
		return nil
	}
	return comp.(*components.PetComponent)
}

// Update 按固定顺序驱动所有系统
// 宠物隐藏期间模拟暂停：计时器与行为全部停摆，只维持 UI 和提示信息
func (s *PetScene) Update(deltaTime float64) {
	s.menu.Update()
	s.controlPanel.Update()

	pet := s.petComponent()
	if pet != nil && !pet.Hidden {
		s.timerSystem.Update(deltaTime)
		s.inputSystem.Update(deltaTime)
		s.behaviorSystem.Update(deltaTime)
		s.movementSystem.Update(deltaTime)
		s.interactionSystem.Update(deltaTime)
		s.animationSystem.Update(deltaTime)
		s.spawnSystem.Update(deltaTime)
		s.updateVoice()

		// 死亡瞬间停掉正在播放的叫声
		if pet.IsDead() && !s.wasDead {
			s.audioManager.StopVoice(pet.Species)
		}
		s.wasDead = pet.IsDead()
	}
	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// updateVoice 随机间隔播放叫声
func (s *PetScene) updateVoice() {
	comp, ok := s.entityManager.GetComponent(s.voiceTimerID, reflect.TypeOf(&components.TimerComponent{}))
	if !ok {
		return
	}
	timer := comp.(*components.TimerComponent)
	if !timer.IsReady {
		return
	}
	timer.Restart(s.nextVoiceInterval())

	pet := s.petComponent()
	if pet == nil || pet.IsDead() || pet.Hidden {
		return
	}
	// 手动控制期间不叫
	if movComp, ok := s.entityManager.GetComponent(s.petID, reflect.TypeOf(&components.MovementComponent{})); ok {
		if movComp.(*components.MovementComponent).ManualActive {
			return
		}
	}
	s.audioManager.PlayVoice(pet.Species)
}

func (s *PetScene) nextVoiceInterval() float64 {
	return s.cfg.VoiceIntervalMin + s.rng.Float64()*(s.cfg.VoiceIntervalMax-s.cfg.VoiceIntervalMin)
}

// Draw 绘制场景与 UI
func (s *PetScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.controlPanel.Draw(screen)
	s.menu.Draw(screen)
}

// Teardown 场景销毁前保存设置
func (s *PetScene) Teardown() {
	if pet := s.petComponent(); pet != nil {
		s.audioManager.StopVoice(pet.Species)
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[PetScene] 保存设置失败: %v", err)
	}
}

// ExitRequested 返回用户是否已请求退出
func (s *PetScene) ExitRequested() bool {
	return s.exitRequested
}

// RequestExit 请求退出应用
func (s *PetScene) RequestExit() {
	s.exitRequested = true
}

// ---- 菜单命令 ----

// AddRandomFood 在屏幕随机位置投放一份食物
// 食物素材缺失时弹出提示并保持空操作
func (s *PetScene) AddRandomFood() {
	if !s.resourceManager.FoodAvailable() {
		s.showToast("食物素材缺失，该功能不可用")
		return
	}
	x := s.rng.Float64() * (s.screenWidth - config.FoodSize)
	y := s.rng.Float64() * (s.screenHeight - config.FoodSize)
	entities.NewFoodEntity(s.entityManager, s.resourceManager.RandomFoodImage(s.rng), x, y)
	log.Printf("[PetScene] 投放食物 (%.0f, %.0f)", x, y)
}

// ClearAllFood 清空所有食物
func (s *PetScene) ClearAllFood() {
	n := s.entityManager.DestroyEntitiesWith(reflect.TypeOf(&components.FoodComponent{}))
	log.Printf("[PetScene] 清空了 %d 份食物", n)
}

// AddRandomPoop 在屏幕随机位置投放一份便便
func (s *PetScene) AddRandomPoop() {
	if !s.resourceManager.PoopAvailable() {
		s.showToast("便便素材缺失，该功能不可用")
		return
	}
	x := s.rng.Float64() * (s.screenWidth - config.PoopSize)
	y := s.rng.Float64() * (s.screenHeight - config.PoopSize)
	entities.NewPoopEntity(s.entityManager, s.resourceManager.RandomPoopImage(s.rng), x, y)
}

// ClearAllPoop 清空所有便便
func (s *PetScene) ClearAllPoop() {
	n := s.entityManager.DestroyEntitiesWith(reflect.TypeOf(&components.PoopComponent{}))
	log.Printf("[PetScene] 清空了 %d 份便便", n)
}

// Revive 复活死亡的宠物
func (s *PetScene) Revive() {
	pet := s.petComponent()
	if pet == nil || !pet.IsDead() {
		return
	}
	s.interactionSystem.Revive(s.petID)
	s.showToast("宠物已复活")
}

// ToggleAudio 切换叫声开关并持久化
func (s *PetScene) ToggleAudio() {
	enabled := !s.audioManager.Enabled()
	s.settingsManager.SetAudioEnabled(enabled)
	if !enabled {
		if pet := s.petComponent(); pet != nil {
			s.audioManager.StopVoice(pet.Species)
		}
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[PetScene] 保存设置失败: %v", err)
	}
}

// ToggleVisible 显示/隐藏宠物
// 隐藏期间模拟暂停，再次显示时从隐藏前的状态继续
func (s *PetScene) ToggleVisible() {
	pet := s.petComponent()
	if pet == nil {
		return
	}
	pet.Hidden = !pet.Hidden
	if pet.Hidden {
		s.audioManager.StopVoice(pet.Species)
	}
}

// OpenControlPanel 打开手动控制面板
func (s *PetScene) OpenControlPanel() {
	pet := s.petComponent()
	if pet == nil || pet.IsDead() {
		return
	}
	s.controlPanel.Open()
}

// SetSpecies 切换宠物种类
// 新种类素材加载失败时保持原状并弹出提示
func (s *PetScene) SetSpecies(species types.PetSpecies) {
	pet := s.petComponent()
	if pet == nil || pet.Species == species {
		return
	}

	frames, err := s.resourceManager.LoadPetFrames(species)
	if err != nil {
		log.Printf("[PetScene] 切换种类失败: %v", err)
		s.showToast(fmt.Sprintf("%s 素材缺失，无法切换", species.DisplayName()))
		return
	}

	s.audioManager.StopVoice(pet.Species)
	pet.Species = species
	s.animationSystem.SetFrameSet(frames)
	s.settingsManager.SetSpecies(species)
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[PetScene] 保存设置失败: %v", err)
	}
	log.Printf("[PetScene] 宠物切换为 %s", species)
}

// showToast 在屏幕顶部弹出提示信息
func (s *PetScene) showToast(message string) {
	x := s.screenWidth/2 - 110
	y := 40.0
	// 多条提示依次向下排
	n := s.entityManager.CountEntitiesWith(reflect.TypeOf(&components.ToastComponent{}))
	y += float64(n) * 40
	entities.NewToastEntity(s.entityManager, message, x, y)
}
