// Package audio 提供宠物叫声文件的解码
//
// 按扩展名分发到 Ebitengine 自带的 mp3/ogg/wav 解码器，
// 并额外支持 Sun/NeXT .au（µ-law）格式的历史素材。
package audio

import (
	"fmt"
	"io"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Stream 是解码后的 PCM 音频流
type Stream interface {
	io.ReadSeeker
}

// SupportedExtensions 可解码的叫声文件扩展名，按查找优先级排列
var SupportedExtensions = []string{".wav", ".mp3", ".ogg", ".au"}

// Decode 按文件扩展名解码音频数据
// ext 需要带点（".wav"），大小写不敏感
func Decode(ext string, r io.Reader) (Stream, error) {
	switch strings.ToLower(ext) {
	case ".wav":
		return wav.DecodeWithoutResampling(r)
	case ".mp3":
		return mp3.DecodeWithoutResampling(r)
	case ".ogg":
		return vorbis.DecodeWithoutResampling(r)
	case ".au":
		return DecodeAU(r)
	default:
		return nil, fmt.Errorf("不支持的音频格式: %s", ext)
	}
}
