package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"itqan_backend/internals/features/site/contents/dto"
	"itqan_backend/internals/features/site/contents/model"
)

const (
	MinSearchLen     = 2
	searchLimitPerTy = 10
)

// SearchResults dikelompokkan per tipe (article/sermon/lesson/book)
type SearchResults map[string][]dto.ContentDTO

func emptyResults() SearchResults {
	out := SearchResults{}
	for _, t := range model.ContentTypes {
		out[t] = []dto.ContentDTO{}
	}
	return out
}

// Search cari di judul + excerpt konten yang terbit dan aktif.
// Query < 2 huruf -> hasil kosong. Satu tipe gagal tidak menggagalkan tipe lain.
func Search(ctx context.Context, db *gorm.DB, q string, types []string) SearchResults {
	out := emptyResults()
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinSearchLen {
		return out
	}
	if len(types) == 0 {
		types = model.ContentTypes
	}
	like := "%" + strings.ToLower(q) + "%"

	for _, t := range types {
		if _, ok := out[t]; !ok {
			continue
		}
		var rows []model.ContentModel
		err := db.WithContext(ctx).
			Where("content_type = ? AND is_published = ? AND is_active = ?", t, true, true).
			Where("LOWER(title) LIKE ? OR LOWER(COALESCE(excerpt, '')) LIKE ?", like, like).
			Order("published_at DESC").
			Limit(searchLimitPerTy).
			Find(&rows).Error
		if err != nil {
			zap.L().Warn("pencarian gagal", zap.String("type", t), zap.Error(err))
			continue
		}
		out[t] = dto.ToContentDTOs(rows, false)
	}
	return out
}
