package state

import (
	"os"

	fsutil "github.com/kk-code-lab/kexplorer/internal/fs"
	"github.com/kk-code-lab/kexplorer/internal/textutil"
	"go.uber.org/zap"
)

// NotTextMessage replaces the content of files the classifier rejects.
const NotTextMessage = "This file does not appear to be a text file. Only previewing of text files is supported."

// buildPreview never fails: anything that cannot be shown becomes a message
// in place of the content.
func (r *StateReducer) buildPreview(name, path string) *PreviewData {
	preview := &PreviewData{Name: name, Path: path}

	info, err := os.Stat(path)
	if err != nil {
		return withMessage(preview, fsutil.ReadFailureMessage(path, err))
	}
	preview.Size = info.Size()

	// pipes and sockets are never opened; a FIFO would block the loop
	sample, err := fsutil.ReadFileHead(path, r.classifier.Limit())
	if err != nil {
		r.logger.Debug("preview sample failed", zap.String("path", path), zap.Error(err))
		return withMessage(preview, fsutil.ReadFailureMessage(path, err))
	}
	if !fsutil.ClassifyBytes(sample) {
		preview.MimeType = fsutil.DetectMIMEBytes(sample)
		return withMessage(preview, NotTextMessage)
	}

	var data []byte
	if preview.Size > r.maxPreviewBytes {
		data, err = fsutil.ReadFileHead(path, r.maxPreviewBytes)
		preview.Truncated = err == nil
	} else {
		data, err = fsutil.ReadAllBytes(path)
	}
	if err != nil {
		r.logger.Warn("preview read failed", zap.String("path", path), zap.Error(err))
		return withMessage(preview, fsutil.ReadFailureMessage(path, err))
	}

	preview.Text = true
	preview.Charset = fsutil.DetectCharset(data)
	preview.Content = fsutil.DecodeText(data)
	preview.Lines = textutil.SplitLines(preview.Content, textutil.DefaultTabWidth)
	return preview
}

func withMessage(preview *PreviewData, message string) *PreviewData {
	preview.Content = message
	preview.Lines = []string{message}
	return preview
}

// scrollPreview moves the preview viewport by delta lines.
func (s *AppState) scrollPreview(delta int) {
	if s.Preview == nil {
		return
	}
	maxOffset := len(s.Preview.Lines) - s.listHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	s.PreviewScrollOffset += delta
	if s.PreviewScrollOffset > maxOffset {
		s.PreviewScrollOffset = maxOffset
	}
	if s.PreviewScrollOffset < 0 {
		s.PreviewScrollOffset = 0
	}
}
