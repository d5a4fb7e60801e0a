package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	"itqan_backend/internals/features/users/users/dto"
)

const searchLimit = 10

func likePattern(q string) string {
	return "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
}

// SearchStudents: pencarian student (nama / email) untuk reader, maksimal 10.
// q kosong -> slice kosong tanpa query.
func SearchStudents(ctx context.Context, db *gorm.DB, q string) ([]dto.StudentSearchItem, error) {
	out := []dto.StudentSearchItem{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}
	like := likePattern(q)
	if err := db.WithContext(ctx).
		Table("users").
		Select("id, name, email, avatar_url").
		Where("role = ?", constants.RoleStudent).
		Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", like, like).
		Order("name ASC").
		Limit(searchLimit).
		Scan(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(out))
	for i := range out {
		ids[i] = out[i].ID
	}
	var recs []struct {
		StudentID uuid.UUID
		Status    string
		CreatedAt time.Time
	}
	if err := db.WithContext(ctx).
		Table("recitations").
		Select("student_id, status, created_at").
		Where("student_id IN ?", ids).
		Order("created_at DESC").
		Scan(&recs).Error; err != nil {
		return nil, err
	}
	// urutan DESC: baris pertama per student = bacaan terakhir
	for _, r := range recs {
		for i := range out {
			if out[i].ID == r.StudentID && out[i].LastRecitationAt == nil {
				at, st := r.CreatedAt, r.Status
				out[i].LastRecitationAt = &at
				out[i].LastRecitationStatus = &st
			}
		}
	}
	return out, nil
}

// QuickSearch: pencarian cepat admin (semua role) + jumlah bacaan & sesi selesai.
func QuickSearch(ctx context.Context, db *gorm.DB, q string) ([]dto.UserSearchItem, error) {
	out := []dto.UserSearchItem{}
	if strings.TrimSpace(q) == "" {
		return out, nil
	}
	like := likePattern(q)
	err := db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.email, u.role, u.avatar_url,
			(SELECT COUNT(*) FROM recitations r WHERE r.student_id = u.id) AS total_recitations,
			(SELECT COUNT(*) FROM bookings b WHERE (b.student_id = u.id OR b.reader_id = u.id) AND b.status = ?) AS total_sessions`,
			constants.BookingCompleted).
		Where("(LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?)", like, like).
		Order("u.created_at DESC").
		Limit(searchLimit).
		Scan(&out).Error
	return out, err
}
