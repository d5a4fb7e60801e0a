package service

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"itqan_backend/internals/constants"
	helper "itqan_backend/internals/helpers"
)

const (
	MsgUnsupportedType = "نوع الملف غير مدعوم (صوت أو صورة فقط)"
	MsgAudioTooLarge   = "حجم الملف الصوتي يتجاوز 20 ميجابايت"
	MsgImageTooLarge   = "حجم الصورة يتجاوز 5 ميجابايت"
	MsgFileRequired    = "الملف مطلوب"
)

type Result struct {
	URL      string `json:"url"`
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

// Check memvalidasi jenis + ukuran, mengembalikan kind ("audio"/"image").
func Check(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, MsgFileRequired)
	}
	kind := helper.FileKind(fh.Header.Get("Content-Type"), fh.Filename)
	switch kind {
	case constants.FileKindAudio:
		if fh.Size > helper.MaxAudioSize {
			return "", fiber.NewError(fiber.StatusBadRequest, MsgAudioTooLarge)
		}
	case constants.FileKindImage:
		if fh.Size > helper.MaxImageSize {
			return "", fiber.NewError(fiber.StatusBadRequest, MsgImageTooLarge)
		}
	default:
		return "", fiber.NewError(fiber.StatusBadRequest, MsgUnsupportedType)
	}
	return kind, nil
}

// Save: folder default = "<kind>s" (audios/images)
func Save(root, folder string, fh *multipart.FileHeader) (*Result, error) {
	kind, err := Check(fh)
	if err != nil {
		return nil, err
	}
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" || strings.Contains(folder, "..") {
		folder = kind + "s"
	}
	url, err := helper.SaveUpload(root, folder, fh)
	if err != nil {
		zap.L().Error("upload gagal disimpan", zap.String("file", fh.Filename), zap.Error(err))
		return nil, err
	}
	return &Result{URL: url, Kind: kind, FileName: fh.Filename, Size: fh.Size}, nil
}
