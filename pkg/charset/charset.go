/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package charset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// 支持的编码标识。
// 模型输出的表格通常是 UTF-8，也常见 Excel 另存的 UTF-16、带 BOM 的 UTF-8，
// 以及中文或西文 Windows 下的 GB18030 / Windows-1252。
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF8BOM = "utf-8-sig"
	EncodingUTF16LE = "utf-16-le"
	EncodingUTF16BE = "utf-16-be"
	EncodingGB18030 = "gb18030"
	EncodingCP1252  = "windows-1252"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect 通过 BOM 与字节模式检测编码。空数据视作 UTF-8。
// 非 UTF-8 的无 BOM 数据：能按 GB18030 严格解码则为 GB18030，否则为 Windows-1252。
func Detect(data []byte) string {
	switch {
	case len(data) == 0:
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	}
	if le, be := zeroParity(data); le || be {
		if le {
			return EncodingUTF16LE
		}
		return EncodingUTF16BE
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	if strictDecode(simplifiedchinese.GB18030, data) {
		return EncodingGB18030
	}
	return EncodingCP1252
}

// zeroParity 判断无 BOM 的 UTF-16：ASCII 文本在 UTF-16 下每两个字节有一个零字节。
func zeroParity(data []byte) (le, be bool) {
	if len(data) < 4 || len(data)%2 != 0 {
		return false, false
	}
	even, odd := 0, 0
	for i, b := range data {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			even++
		} else {
			odd++
		}
	}
	half := len(data) / 2
	switch {
	case odd*10 > half*3 && even*20 < half:
		return true, false
	case even*10 > half*3 && odd*20 < half:
		return false, true
	}
	return false, false
}

func strictDecode(enc encoding.Encoding, data []byte) bool {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return false
	}
	return !bytes.ContainsRune(out, utf8.RuneError)
}

// Decode 把数据统一解码为 UTF-8 文本（去除 BOM），并返回检测到的编码标识。
func Decode(data []byte) (string, string, error) {
	name := Detect(data)
	var dec *encoding.Decoder
	switch name {
	case EncodingUTF8:
		return string(data), name, nil
	case EncodingUTF8BOM:
		return string(data[len(bomUTF8):]), name, nil
	case EncodingUTF16LE:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case EncodingUTF16BE:
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	case EncodingGB18030:
		dec = simplifiedchinese.GB18030.NewDecoder()
	default:
		dec = charmap.Windows1252.NewDecoder()
	}
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", name, fmt.Errorf("按 %s 解码失败: %w", name, err)
	}
	return string(out), name, nil
}
