package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"itqan_backend/internals/features/users/users/model"
)

/* ===================== READERS (public) ===================== */

type ReaderPublic struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Gender            *string   `json:"gender,omitempty"`
	City              *string   `json:"city,omitempty"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	Qualification     *string   `json:"qualification,omitempty"`
	MemorizedParts    int       `json:"memorized_parts"`
	YearsOfExperience int       `json:"years_of_experience"`
	Bio               *string   `json:"bio,omitempty"`
	Rating            float64   `json:"rating"`
	TotalReviews      int       `json:"total_reviews"`
}

/* ===================== ADMIN USERS ===================== */

type AdminUserItem struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	Gender         *string    `json:"gender,omitempty"`
	Phone          *string    `json:"phone,omitempty"`
	City           *string    `json:"city,omitempty"`
	IsActive       bool       `json:"is_active"`
	ApprovalStatus string     `json:"approval_status"`
	EmailVerified  bool       `json:"email_verified"`
	IsLocked       bool       `json:"is_locked"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	IsOnline       bool       `json:"is_online"`
}

func ToAdminUserItem(u *model.UserModel, online bool) AdminUserItem {
	return AdminUserItem{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Gender:         u.Gender,
		Phone:          u.Phone,
		City:           u.City,
		IsActive:       u.IsActive,
		ApprovalStatus: u.ApprovalStatus,
		EmailVerified:  u.EmailVerified,
		IsLocked:       u.IsLocked,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		IsOnline:       online,
	}
}

type UserCounts struct {
	Recitations int64 `json:"recitations"`
	Bookings    int64 `json:"bookings"`
	Sessions    int64 `json:"sessions"`
}

type AdminUserDetail struct {
	User    AdminUserItem             `json:"user"`
	Profile *model.ReaderProfileModel `json:"profile"`
	Counts  UserCounts                `json:"counts"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student reader admin"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
	City     string `json:"city" validate:"omitempty,max=100"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.Phone = strings.TrimSpace(r.Phone)
	r.City = strings.TrimSpace(r.City)
}

// UpdateUserRequest partial: field nil = tidak diubah
type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Role           *string `json:"role"`
	IsActive       *bool   `json:"is_active"`
	ApprovalStatus *string `json:"approval_status"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
}

/* ===================== READER APPLICATIONS ===================== */

type ReaderApplication struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              *string   `json:"phone,omitempty"`
	City               *string   `json:"city,omitempty"`
	Gender             *string   `json:"gender,omitempty"`
	ApprovalStatus     string    `json:"approval_status"`
	CreatedAt          time.Time `json:"created_at"`
	FullNameTriple     *string   `json:"full_name_triple,omitempty"`
	Qualification      *string   `json:"qualification,omitempty"`
	MemorizedParts     *int      `json:"memorized_parts,omitempty"`
	YearsOfExperience  *int      `json:"years_of_experience,omitempty"`
	CertificateFileURL *string   `json:"certificate_file_url,omitempty"`
}

type ApplicationDecisionRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
}

/* ===================== SEARCH ===================== */

// StudentSearchItem hasil pencarian student oleh reader (+ bacaan terakhir)
type StudentSearchItem struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	AvatarURL            *string    `json:"avatar_url,omitempty"`
	LastRecitationAt     *time.Time `json:"last_recitation_at"`
	LastRecitationStatus *string    `json:"last_recitation_status"`
}

// UserSearchItem hasil quick search admin
type UserSearchItem struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	TotalRecitations int64     `json:"total_recitations"`
	TotalSessions    int64     `json:"total_sessions"`
}
