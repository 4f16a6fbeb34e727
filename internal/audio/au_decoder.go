package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// AUDecoder 将 Sun/NeXT .au 文件解码为 16 位 PCM 流
// 仅支持 µ-law 编码的单/双声道素材
type AUDecoder struct {
	data       []byte // 解码后的 PCM 数据（16 位有符号，小端）
	sampleRate int64  // 采样率（Hz）
	channels   int    // 声道数（1=单声道，2=立体声）
	offset     int64  // 当前读取位置
}

// .au 文件头（至少 24 字节，大端）
type auHeader struct {
	Magic      uint32 // 0x2e736e64 (".snd")
	DataOffset uint32 // 音频数据偏移（通常 24）
	DataSize   uint32 // 音频数据大小（未知时为 0xFFFFFFFF）
	Encoding   uint32 // 编码格式
	SampleRate uint32 // 采样率（Hz）
	Channels   uint32 // 交错声道数
}

const (
	auMagic        = 0x2e736e64 // 大端的 ".snd"
	auEncodingULaw = 1          // 8 位 µ-law
)

// µ-law 解压表（µ-law 字节 → 16 位 PCM）
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// DecodeAU 从 r 解码一个 .au 文件
func DecodeAU(r io.Reader) (*AUDecoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取 AU 文件失败: %w", err)
	}

	if len(data) < 24 {
		return nil, fmt.Errorf("AU 文件过短: %d 字节（最少 24）", len(data))
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("读取 AU 文件头失败: %w", err)
	}

	if header.Magic != auMagic {
		return nil, fmt.Errorf("AU 魔数错误: 0x%08x（应为 0x%08x）", header.Magic, auMagic)
	}
	if header.Encoding != auEncodingULaw {
		return nil, fmt.Errorf("不支持的 AU 编码: %d（仅支持 µ-law [1]）", header.Encoding)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("不支持的声道数: %d（仅支持 1-2）", header.Channels)
	}

	audioDataOffset := int(header.DataOffset)
	if audioDataOffset < 24 || audioDataOffset >= len(data) {
		return nil, fmt.Errorf("AU 数据偏移非法: %d（文件大小: %d）", audioDataOffset, len(data))
	}

	ulawData := data[audioDataOffset:]

	pcmData := make([]byte, len(ulawData)*2)
	for i, ulaw := range ulawData {
		pcm := mulawTable[ulaw]
		pcmData[i*2] = byte(pcm)
		pcmData[i*2+1] = byte(pcm >> 8)
	}

	return &AUDecoder{
		data:       pcmData,
		sampleRate: int64(header.SampleRate),
		channels:   int(header.Channels),
	}, nil
}

// Read 实现 io.Reader
func (d *AUDecoder) Read(p []byte) (n int, err error) {
	if d.offset >= int64(len(d.data)) {
		return 0, io.EOF
	}
	n = copy(p, d.data[d.offset:])
	d.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (d *AUDecoder) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = d.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(d.data)) + offset
	default:
		return 0, fmt.Errorf("非法 whence: %d", whence)
	}
	if newOffset < 0 {
		return 0, fmt.Errorf("负的读取位置: %d", newOffset)
	}
	d.offset = newOffset
	return newOffset, nil
}

// Length 返回解码后 PCM 数据的总字节数
func (d *AUDecoder) Length() int64 {
	return int64(len(d.data))
}

// SampleRate 返回采样率（Hz）
func (d *AUDecoder) SampleRate() int64 {
	return d.sampleRate
}

// Channels 返回声道数
func (d *AUDecoder) Channels() int {
	return d.channels
}
