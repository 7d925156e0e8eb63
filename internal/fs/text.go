package fs

import (
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
)

// DefaultSampleLimit caps how much of a file the classifier reads.
const DefaultSampleLimit = 64 * 1024

// textRatioPercent is the share of plain ASCII bytes a sample must exceed.
const textRatioPercent = 95

// Classifier decides whether a file is safe to show as text.
type Classifier struct {
	// SampleLimit bounds the bytes read per file; zero or less means DefaultSampleLimit.
	SampleLimit int64
}

// IsProbablyText classifies path with the default sample limit.
func IsProbablyText(path string) bool {
	return Classifier{}.IsProbablyText(path)
}

// IsProbablyText reports false for anything that is not a readable regular
// file, otherwise the result of ClassifyBytes on the leading sample.
func (c Classifier) IsProbablyText(path string) bool {
	sample, err := ReadFileHead(path, c.Limit())
	if err != nil {
		return false
	}
	return ClassifyBytes(sample)
}

// Limit is the effective sample size.
func (c Classifier) Limit() int64 {
	if c.SampleLimit <= 0 {
		return DefaultSampleLimit
	}
	return c.SampleLimit
}

// ClassifyBytes is the ASCII-ratio heuristic. Any byte below 0x09 rejects the
// whole sample; tab, LF, FF, CR and 0x20-0x7E count as text; everything else
// is tallied. An empty sample is text.
func ClassifyBytes(sample []byte) bool {
	ascii := 0
	other := 0
	for _, b := range sample {
		if b < 0x09 {
			return false
		}
		if isPlainTextByte(b) {
			ascii++
		} else {
			other++
		}
	}
	total := ascii + other
	if total == 0 {
		return true
	}
	return 100*ascii/total > textRatioPercent
}

func isPlainTextByte(b byte) bool {
	switch {
	case b == 0x09 || b == 0x0A || b == 0x0C || b == 0x0D:
		return true
	case b >= 0x20 && b <= 0x7E:
		return true
	default:
		return false
	}
}

// ReadFileHead returns up to limit bytes from the beginning of path. Only
// regular files are opened; anything else fails with ErrNotRegular.
func ReadFileHead(path string, limit int64) ([]byte, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if limit <= 0 {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return data, nil
}

// openRegular opens path for reading after checking it is a regular file.
// Opening a FIFO blocks until a writer appears.
func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &ReadError{Path: path, Cause: ErrNotRegular}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return f, nil
}

type unicodeEncoding int

const (
	encodingUnknown unicodeEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

func detectUnicodeEncoding(sample []byte) unicodeEncoding {
	if len(sample) >= 3 && sample[0] == 0xEF && sample[1] == 0xBB && sample[2] == 0xBF {
		return encodingUTF8BOM
	}
	if len(sample) >= 2 {
		switch {
		case sample[0] == 0xFF && sample[1] == 0xFE:
			return encodingUTF16LE
		case sample[0] == 0xFE && sample[1] == 0xFF:
			return encodingUTF16BE
		}
	}
	return encodingUnknown
}

// DecodeText turns file bytes into a string: a UTF-8 BOM is dropped and
// BOM-marked UTF-16 is transcoded. Anything else is taken as UTF-8.
func DecodeText(content []byte) string {
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return string(content[3:])
	case encodingUTF16LE:
		return decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		return decodeUTF16(content, unicode.BigEndian)
	default:
		return string(content)
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) string {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, err := decoder.Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(out)
}
