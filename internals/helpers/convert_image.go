package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"itqan_backend/internals/constants"
)

const (
	MaxImageSize = 5 * 1024 * 1024
	MaxAudioSize = 20 * 1024 * 1024

	AvatarSize = 256
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(filename), "_")
}

// GenerateUniqueFilename: <folder>/<yyyymmdd>-<uuid>-<nama-aman>
func GenerateUniqueFilename(folder, originalFilename string) string {
	return fmt.Sprintf("%s/%s-%s-%s",
		strings.Trim(folder, "/"),
		time.Now().Format("20060102"),
		uuid.New().String(),
		sanitizeFilename(originalFilename),
	)
}

// FileKind: "audio" | "image" | "" (tidak didukung). Content-Type dulu, fallback ke ekstensi.
func FileKind(contentType, filename string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	switch {
	case strings.HasPrefix(ct, "audio/"):
		return constants.FileKindAudio
	case strings.HasPrefix(ct, "image/"):
		return constants.FileKindImage
	case ct == "" || ct == "application/octet-stream":
		return constants.DetectFileKindFromExt(filename)
	default:
		return ""
	}
}

// SaveBytes menulis data ke <root>/<rel> dan mengembalikan URL publik /uploads/<rel>.
func SaveBytes(root, rel string, data []byte) (string, error) {
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder upload: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("gagal menyimpan file: %w", err)
	}
	return path.Join("/uploads", rel), nil
}

// SaveUpload menyimpan file multipart apa adanya.
func SaveUpload(root, folder string, fh *multipart.FileHeader) (string, error) {
	data, err := readMultipart(fh)
	if err != nil {
		return "", err
	}
	return SaveBytes(root, GenerateUniqueFilename(folder, fh.Filename), data)
}

// SaveAvatarWebP: decode -> crop tengah persegi AvatarSize -> encode WebP -> simpan.
func SaveAvatarWebP(root string, fh *multipart.FileHeader) (string, error) {
	data, err := readMultipart(fh)
	if err != nil {
		return "", err
	}
	out, err := ConvertToWebP(data, AvatarSize)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + ".webp"
	return SaveBytes(root, GenerateUniqueFilename("avatars", name), out)
}

// ConvertToWebP ubah gambar (jpeg/png/gif) jadi WebP persegi size x size.
func ConvertToWebP(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("format gambar tidak didukung: %w", err)
	}
	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: 82}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func readMultipart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("gagal membaca file: %w", err)
	}
	return buf.Bytes(), nil
}
