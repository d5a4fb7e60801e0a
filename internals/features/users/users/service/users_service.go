package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	authHelper "itqan_backend/internals/features/users/auth/helper"
	authService "itqan_backend/internals/features/users/auth/service"
	"itqan_backend/internals/features/users/users/dto"
	"itqan_backend/internals/features/users/users/model"
	helper "itqan_backend/internals/helpers"
)

const OnlineWindow = 5 * time.Minute

var errUserNotFound = fiber.NewError(fiber.StatusNotFound, helper.MsgUserNotFound)

/* ===================== READERS ===================== */

// ListApprovedReaders: reader aktif & disetujui, rating DESC lalu nama
func ListApprovedReaders(ctx context.Context, db *gorm.DB) ([]dto.ReaderPublic, error) {
	out := []dto.ReaderPublic{}
	err := db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.gender, u.city, u.avatar_url,
			rp.qualification, COALESCE(rp.memorized_parts, 0) AS memorized_parts,
			COALESCE(rp.years_of_experience, 0) AS years_of_experience, rp.bio,
			COALESCE(rp.rating, 0) AS rating, COALESCE(rp.total_reviews, 0) AS total_reviews`).
		Joins("LEFT JOIN reader_profiles rp ON rp.user_id = u.id").
		Where("u.role = ? AND u.is_active = ? AND u.approval_status IN ?",
			constants.RoleReader, true, constants.ApprovedStatuses).
		Order("COALESCE(rp.rating, 0) DESC, u.name ASC").
		Scan(&out).Error
	return out, err
}

/* ===================== ADMIN USERS ===================== */

type UserFilter struct {
	Role   string
	Search string
	Offset int
	Limit  int
}

func ListUsers(ctx context.Context, db *gorm.DB, f UserFilter) ([]dto.AdminUserItem, int64, error) {
	q := db.WithContext(ctx).Model(&model.UserModel{})
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		like := "%" + s + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.UserModel
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	online, err := authService.ActiveSessionUserIDs(ctx, db, OnlineWindow)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.AdminUserItem, 0, len(rows))
	for i := range rows {
		out = append(out, dto.ToAdminUserItem(&rows[i], online[rows[i].ID]))
	}
	return out, total, nil
}

func findUser(ctx context.Context, db *gorm.DB, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func GetUserDetail(ctx context.Context, db *gorm.DB, id uuid.UUID) (*dto.AdminUserDetail, error) {
	u, err := findUser(ctx, db, id)
	if err != nil {
		return nil, err
	}

	var profile *model.ReaderProfileModel
	var p model.ReaderProfileModel
	if err := db.WithContext(ctx).Where("user_id = ?", id).Limit(1).Find(&p).Error; err != nil {
		return nil, err
	}
	if p.ID != uuid.Nil {
		profile = &p
	}

	var counts dto.UserCounts
	recCol, bookCol := "student_id", "student_id"
	if u.Role == constants.RoleReader {
		recCol, bookCol = "assigned_reader_id", "reader_id"
	}
	tx := db.WithContext(ctx)
	if err := tx.Table("recitations").Where(recCol+" = ?", id).Count(&counts.Recitations).Error; err != nil {
		return nil, err
	}
	if err := tx.Table("bookings").Where(bookCol+" = ?", id).Count(&counts.Bookings).Error; err != nil {
		return nil, err
	}
	if err := tx.Table("bookings").Where(bookCol+" = ? AND status = ?", id, constants.BookingCompleted).
		Count(&counts.Sessions).Error; err != nil {
		return nil, err
	}

	online, err := authService.ActiveSessionUserIDs(ctx, db, OnlineWindow)
	if err != nil {
		return nil, err
	}
	return &dto.AdminUserDetail{
		User:    dto.ToAdminUserItem(u, online[u.ID]),
		Profile: profile,
		Counts:  counts,
	}, nil
}

// CreateUser (admin): akun langsung aktif & terverifikasi
func CreateUser(ctx context.Context, db *gorm.DB, adminID uuid.UUID, req dto.CreateUserRequest, ip string) (*model.UserModel, error) {
	var exists int64
	if err := db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", req.Email).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	approval := constants.ApprovalApproved
	if req.Role == constants.RoleReader {
		approval = constants.ApprovalAutoApproved
	}
	u := &model.UserModel{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           req.Role,
		Gender:         helper.StrPtr(req.Gender),
		Phone:          helper.StrPtr(req.Phone),
		City:           helper.StrPtr(req.City),
		IsActive:       true,
		ApprovalStatus: approval,
		EmailVerified:  true,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}

	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      "user_created",
		EntityType:  "user",
		EntityID:    u.ID.String(),
		Description: "إنشاء مستخدم من قبل الإدارة",
		Details:     map[string]any{"email": u.Email, "role": u.Role},
		IPAddress:   ip,
	})
	return u, nil
}

// UpdateUser (admin) partial
func UpdateUser(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, req dto.UpdateUserRequest, ip string) (*model.UserModel, error) {
	if _, err := findUser(ctx, db, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "الاسم مطلوب")
		}
		fields["name"] = name
	}
	if req.Role != nil {
		if !constants.IsValidRole(*req.Role) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "الدور غير صحيح")
		}
		fields["role"] = *req.Role
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.ApprovalStatus != nil {
		switch *req.ApprovalStatus {
		case constants.ApprovalPending, constants.ApprovalApproved, constants.ApprovalAutoApproved, constants.ApprovalRejected:
			fields["approval_status"] = *req.ApprovalStatus
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "حالة الاعتماد غير صحيحة")
		}
	}
	if req.Gender != nil {
		g := strings.TrimSpace(*req.Gender)
		if g != "" && !constants.IsValidGender(g) {
			return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgInvalidGender)
		}
		fields["gender"] = helper.StrPtr(g)
	}
	if req.Phone != nil {
		fields["phone"] = helper.StrPtr(strings.TrimSpace(*req.Phone))
	}
	if len(fields) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, helper.MsgNoDataToUpdate)
	}

	if err := db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      "user_updated",
		EntityType:  "user",
		EntityID:    id.String(),
		Description: "تعديل بيانات مستخدم",
		Details:     fields,
		IPAddress:   ip,
	})
	return findUser(ctx, db, id)
}

// DeactivateUser: DELETE tidak menghapus baris, hanya is_active=false
func DeactivateUser(ctx context.Context, db *gorm.DB, adminID, id uuid.UUID, ip string) error {
	if adminID == id {
		return fiber.NewError(fiber.StatusBadRequest, "لا يمكنك تعطيل حسابك")
	}
	if _, err := findUser(ctx, db, id); err != nil {
		return err
	}
	if err := db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return err
	}
	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      "user_deactivated",
		EntityType:  "user",
		EntityID:    id.String(),
		Description: "تعطيل حساب مستخدم",
		IPAddress:   ip,
	})
	return nil
}
