package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileKindAudio = "audio"
	FileKindImage = "image"
)

// DetectFileKindFromExt dipakai kalau Content-Type dari client kosong / octet-stream.
func DetectFileKindFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".mp3", ".wav", ".ogg", ".m4a", ".webm", ".aac":
		return FileKindAudio
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return FileKindImage
	default:
		return ""
	}
}
