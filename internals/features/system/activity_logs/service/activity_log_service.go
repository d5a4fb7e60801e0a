package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"itqan_backend/internals/features/system/activity_logs/model"
	helper "itqan_backend/internals/helpers"
	"itqan_backend/internals/helpers/dbtime"
)

const PerPage = 50

// Entry input Log(). Field kosong disimpan NULL.
type Entry struct {
	UserID      *uuid.UUID
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Details     any
	IPAddress   string
}

// Log menyimpan activity log. Kegagalan hanya di-log (tidak menggagalkan request).
func Log(ctx context.Context, db *gorm.DB, e Entry) {
	if db == nil || e.Action == "" {
		return
	}
	row := model.ActivityLogModel{
		UserID:      e.UserID,
		Action:      e.Action,
		EntityType:  helper.StrPtr(e.EntityType),
		EntityID:    helper.StrPtr(e.EntityID),
		Description: helper.StrPtr(e.Description),
		IPAddress:   helper.StrPtr(e.IPAddress),
	}
	if e.Details != nil {
		if b, err := json.Marshal(e.Details); err == nil {
			row.Details = datatypes.JSON(b)
		}
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		zap.L().Warn("gagal menyimpan activity log", zap.String("action", e.Action), zap.Error(err))
	}
}

type Filter struct {
	Action   string
	UserID   *uuid.UUID
	DateFrom string // YYYY-MM-DD (inklusif)
	DateTo   string // YYYY-MM-DD (inklusif)
	Search   string
	Offset   int
	Limit    int
}

func List(ctx context.Context, db *gorm.DB, f Filter) ([]model.ActivityLogModel, int64, error) {
	q := db.WithContext(ctx).Table("activity_logs AS al").
		Joins("LEFT JOIN users u ON u.id = al.user_id")

	if f.Action != "" {
		q = q.Where("al.action = ?", f.Action)
	}
	if f.UserID != nil {
		q = q.Where("al.user_id = ?", *f.UserID)
	}
	if f.DateFrom != "" {
		if d, err := dbtime.ParseDate(f.DateFrom); err == nil {
			start, _ := dbtime.DayBounds(d)
			q = q.Where("al.created_at >= ?", start)
		}
	}
	if f.DateTo != "" {
		if d, err := dbtime.ParseDate(f.DateTo); err == nil {
			_, end := dbtime.DayBounds(d)
			q = q.Where("al.created_at < ?", end)
		}
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("(LOWER(al.description) LIKE ? OR LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?)", like, like, like)
	}

	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := []model.ActivityLogModel{}
	err := q.Select("al.*, u.name AS user_name, u.email AS user_email").
		Order("al.created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Scan(&rows).Error
	return rows, total, err
}

func DistinctActions(ctx context.Context, db *gorm.DB) ([]string, error) {
	var actions []string
	err := db.WithContext(ctx).Model(&model.ActivityLogModel{}).
		Distinct("action").Order("action ASC").Pluck("action", &actions).Error
	return actions, err
}

// CountSince dipakai ringkasan keamanan (login_success / login_failed per periode)
func CountSince(ctx context.Context, db *gorm.DB, action string, since time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&model.ActivityLogModel{}).
		Where("action = ? AND created_at >= ?", action, since).
		Count(&n).Error
	return n, err
}

func Recent(ctx context.Context, db *gorm.DB, action string, limit int) ([]model.ActivityLogModel, error) {
	rows := []model.ActivityLogModel{}
	err := db.WithContext(ctx).Table("activity_logs AS al").
		Joins("LEFT JOIN users u ON u.id = al.user_id").
		Select("al.*, u.name AS user_name, u.email AS user_email").
		Where("al.action = ?", action).
		Order("al.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
