package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Normalize prepares raw file bytes for lexing: UTF-16 input (with BOM) is
// transcoded to UTF-8, a UTF-8 BOM is stripped and \r\n becomes \n.
// The returned flags record what was changed so the writer can restore it.
func Normalize(content []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	if enc := utf16Endianness(content); enc != nil {
		decoded, _, err := transform.Bytes(unicode.UTF16(*enc, unicode.ExpectBOM).NewDecoder(), content)
		if err != nil {
			return nil, 0, fmt.Errorf("decode utf-16: %w", err)
		}
		content = decoded
		flags |= FileDecodedUTF16
	}
	content, hadBOM := removeBOM(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags, nil
}

func utf16Endianness(content []byte) *unicode.Endianness {
	var e unicode.Endianness
	switch {
	case bytes.HasPrefix(content, bomUTF16LE):
		e = unicode.LittleEndian
	case bytes.HasPrefix(content, bomUTF16BE):
		e = unicode.BigEndian
	default:
		return nil
	}
	return &e
}

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, bomUTF8) {
		return content[len(bomUTF8):], true
	}
	return content, false
}

// UTF8BOM returns the byte order mark written back for files flagged FileHadBOM.
func UTF8BOM() []byte {
	return slices.Clone(bomUTF8)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) //nolint:gosec // file size is bounded by FileSet.Add
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: находим наибольший lineIdx[i] < off
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// hi: индекс последнего '\n' перед off, -1 если его нет
	if hi < 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[hi] + 1
	return LineCol{Line: uint32(hi + 2), Col: off - startOff + 1} //nolint:gosec // hi < len(lineIdx)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
