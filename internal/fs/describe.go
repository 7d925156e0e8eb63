package fs

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
)

// mimeSampleLimit matches the amount mimetype reads by default.
const mimeSampleLimit = 3072

// DetectMIME returns the sniffed MIME type of path, or "" when it is not a
// readable regular file.
func DetectMIME(path string) string {
	sample, err := ReadFileHead(path, mimeSampleLimit)
	if err != nil {
		return ""
	}
	return DetectMIMEBytes(sample)
}

// DetectMIMEBytes returns the MIME type sniffed from a leading sample.
func DetectMIMEBytes(sample []byte) string {
	return mimetype.Detect(sample).String()
}

// DetectCharset guesses the character set of text content.
func DetectCharset(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	switch detectUnicodeEncoding(content) {
	case encodingUTF8BOM:
		return "utf-8"
	case encodingUTF16LE:
		return "utf-16le"
	case encodingUTF16BE:
		return "utf-16be"
	}
	result, err := chardet.NewTextDetector().DetectBest(content)
	if err != nil || result == nil {
		return ""
	}
	return strings.ToLower(result.Charset)
}
