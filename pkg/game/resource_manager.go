package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	petaudio "github.com/decker502/deskpet/internal/audio"
	"github.com/decker502/deskpet/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// PetFrameSet maps every pet state to its ordered animation frames.
// A state may map to an empty slice when the corresponding images are
// missing on disk; callers are expected to fall back to the Idle frames.
type PetFrameSet map[types.PetState][]*ebiten.Image

// ResourceManager is responsible for centralized management of on-disk
// assets: per-species animation frames, food/poop sprites, voice clips and
// the UI font. Everything is loaded lazily and cached, so repeated lookups
// are cheap.
//
// The assets directory layout follows the original distribution:
//
//	assets/<species>/"<State> (N).png"  - animation frames, N starting at 1
//	assets/<species>/audio.{wav,mp3,ogg,au} - voice clip
//	assets/food/*.png                   - food sprites
//	assets/poop/*.png                   - poop sprites
//	assets/fonts/*.{ttf,otf}            - UI font (optional)
//
// Not thread-safe: all loading happens on the game loop goroutine.
type ResourceManager struct {
	assetsDir    string
	audioContext *audio.Context

	imageCache     map[string]*ebiten.Image
	voiceCache     map[types.PetSpecies]*audio.Player
	petFramesCache map[types.PetSpecies]PetFrameSet
	foodImages     []*ebiten.Image
	foodLoaded     bool
	poopImages     []*ebiten.Image
	poopLoaded     bool
	fontSource     *text.GoTextFaceSource
	fontLoaded     bool
}

// NewResourceManager creates a ResourceManager rooted at assetsDir.
// The audioContext may be nil, in which case voice clips are unavailable.
func NewResourceManager(audioContext *audio.Context, assetsDir string) *ResourceManager {
	return &ResourceManager{
		assetsDir:      assetsDir,
		audioContext:   audioContext,
		imageCache:     make(map[string]*ebiten.Image),
		voiceCache:     make(map[types.PetSpecies]*audio.Player),
		petFramesCache: make(map[types.PetSpecies]PetFrameSet),
	}
}

// HasSpeciesAssets reports whether the asset directory for the species
// exists. Used for the fatal startup check on the default species.
func (rm *ResourceManager) HasSpeciesAssets(species types.PetSpecies) bool {
	info, err := os.Stat(filepath.Join(rm.assetsDir, species.String()))
	return err == nil && info.IsDir()
}

// LoadImage loads and caches a single image file.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := rm.imageCache[path]; ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开图片失败 %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("解码图片失败 %s: %w", path, err)
	}

	img := ebiten.NewImageFromImage(src)
	rm.imageCache[path] = img
	return img, nil
}

// LoadPetFrames loads every animation frame of the species.
// Returns an error when the species directory is missing or when not even
// the Idle frames could be loaded; other missing states only log a warning
// and end up as empty slices in the returned set.
func (rm *ResourceManager) LoadPetFrames(species types.PetSpecies) (PetFrameSet, error) {
	if frames, ok := rm.petFramesCache[species]; ok {
		return frames, nil
	}

	dir := filepath.Join(rm.assetsDir, species.String())
	if !rm.HasSpeciesAssets(species) {
		return nil, fmt.Errorf("宠物素材目录不存在: %s", dir)
	}

	frameSet := make(PetFrameSet, len(types.AllPetStates))
	for _, state := range types.AllPetStates {
		var frames []*ebiten.Image
		for i := 1; ; i++ {
			path := filepath.Join(dir, fmt.Sprintf("%s (%d).png", state, i))
			if _, err := os.Stat(path); err != nil {
				break
			}
			img, err := rm.LoadImage(path)
			if err != nil {
				log.Printf("[ResourceManager] 帧加载失败 %s: %v", path, err)
				break
			}
			frames = append(frames, img)
		}
		if len(frames) == 0 {
			log.Printf("[ResourceManager] %s 缺少 %s 动画帧，该状态将回退到 Idle", species, state)
		}
		frameSet[state] = frames
	}

	if len(frameSet[types.StateIdle]) == 0 {
		return nil, fmt.Errorf("%s 缺少 Idle 动画帧，无法显示宠物", species)
	}

	rm.petFramesCache[species] = frameSet
	log.Printf("[ResourceManager] 已加载 %s 动画帧", species)
	return frameSet, nil
}

// loadItemImages scans a directory for loose sprite images.
func (rm *ResourceManager) loadItemImages(sub string) []*ebiten.Image {
	dir := filepath.Join(rm.assetsDir, sub)
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[ResourceManager] %s 素材目录不可用: %v", sub, err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var images []*ebiten.Image
	for _, name := range names {
		img, err := rm.LoadImage(filepath.Join(dir, name))
		if err != nil {
			log.Printf("[ResourceManager] %s 素材加载失败: %v", sub, err)
			continue
		}
		images = append(images, img)
	}
	return images
}

// FoodImages returns the available food sprites (may be empty).
func (rm *ResourceManager) FoodImages() []*ebiten.Image {
	if !rm.foodLoaded {
		rm.foodImages = rm.loadItemImages("food")
		rm.foodLoaded = true
	}
	return rm.foodImages
}

// PoopImages returns the available poop sprites (may be empty).
func (rm *ResourceManager) PoopImages() []*ebiten.Image {
	if !rm.poopLoaded {
		rm.poopImages = rm.loadItemImages("poop")
		rm.poopLoaded = true
	}
	return rm.poopImages
}

// RandomFoodImage picks a random food sprite, or nil when none exist.
func (rm *ResourceManager) RandomFoodImage(rng *rand.Rand) *ebiten.Image {
	images := rm.FoodImages()
	if len(images) == 0 {
		return nil
	}
	return images[rng.Intn(len(images))]
}

// RandomPoopImage picks a random poop sprite, or nil when none exist.
func (rm *ResourceManager) RandomPoopImage(rng *rand.Rand) *ebiten.Image {
	images := rm.PoopImages()
	if len(images) == 0 {
		return nil
	}
	return images[rng.Intn(len(images))]
}

// FoodAvailable reports whether the food feature can spawn items.
func (rm *ResourceManager) FoodAvailable() bool {
	return len(rm.FoodImages()) > 0
}

// PoopAvailable reports whether the poop feature can spawn items.
func (rm *ResourceManager) PoopAvailable() bool {
	return len(rm.PoopImages()) > 0
}

// loadVoiceStream reads and decodes the species voice clip.
// Looks for assets/<species>/audio.<ext> trying the supported extensions in
// order. The whole file is read into memory before decoding: the wav/mp3/ogg
// decoders read lazily from their source, so the stream must not depend on an
// open file handle.
func (rm *ResourceManager) loadVoiceStream(species types.PetSpecies) (petaudio.Stream, error) {
	dir := filepath.Join(rm.assetsDir, species.String())
	for _, ext := range petaudio.SupportedExtensions {
		path := filepath.Join(dir, "audio"+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		stream, err := petaudio.Decode(ext, bytes.NewReader(data))
		if err != nil {
			log.Printf("[ResourceManager] 叫声解码失败 %s: %v", path, err)
			continue
		}
		log.Printf("[ResourceManager] 已加载 %s 叫声: %s", species, path)
		return stream, nil
	}

	return nil, fmt.Errorf("未找到 %s 的叫声文件", species)
}

// LoadVoicePlayer loads and caches the species voice clip as a player.
// Returns an error when the audio context is nil or no clip exists.
func (rm *ResourceManager) LoadVoicePlayer(species types.PetSpecies) (*audio.Player, error) {
	if player, ok := rm.voiceCache[species]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("音频上下文未初始化")
	}

	stream, err := rm.loadVoiceStream(species)
	if err != nil {
		return nil, err
	}
	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("创建叫声播放器失败: %w", err)
	}
	rm.voiceCache[species] = player
	return player, nil
}

// LoadFontFace returns a UI text face of the given size, or nil when no
// font file is present under assets/fonts (text rendering then degrades to
// a plain rectangle without labels).
func (rm *ResourceManager) LoadFontFace(size float64) *text.GoTextFace {
	if !rm.fontLoaded {
		rm.fontLoaded = true
		dir := filepath.Join(rm.assetsDir, "fonts")
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Printf("[ResourceManager] 字体目录不可用，界面文本将被省略: %v", err)
			return nil
		}
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if ext != ".ttf" && ext != ".otf" {
				continue
			}
			f, err := os.Open(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			src, err := text.NewGoTextFaceSource(f)
			f.Close()
			if err != nil {
				log.Printf("[ResourceManager] 字体加载失败 %s: %v", e.Name(), err)
				continue
			}
			rm.fontSource = src
			log.Printf("[ResourceManager] 已加载字体: %s", e.Name())
			break
		}
	}

	if rm.fontSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: rm.fontSource, Size: size}
}
