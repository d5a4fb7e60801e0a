package dto

import (
	"strings"

	"github.com/google/uuid"

	userModel "itqan_backend/internals/features/users/users/model"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Gender   string `json:"gender"`
	Phone    string `json:"phone"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Gender = strings.TrimSpace(r.Gender)
	r.Phone = strings.TrimSpace(r.Phone)
}

type ReaderRegisterRequest struct {
	FullNameTriple     string `json:"full_name_triple"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Phone              string `json:"phone"`
	City               string `json:"city"`
	Gender             string `json:"gender"`
	Qualification      string `json:"qualification"`
	MemorizedParts     int    `json:"memorized_parts"`
	YearsOfExperience  int    `json:"years_of_experience"`
	CertificateFileURL string `json:"certificate_file_url"`
}

func (r *ReaderRegisterRequest) Normalize() {
	r.FullNameTriple = strings.TrimSpace(r.FullNameTriple)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.City = strings.TrimSpace(r.City)
	r.Gender = strings.TrimSpace(r.Gender)
	r.Qualification = strings.TrimSpace(r.Qualification)
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type EmailRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// UserBrief bentuk user di response login/register/verify
type UserBrief struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func ToUserBrief(u *userModel.UserModel) UserBrief {
	return UserBrief{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type LoginResponse struct {
	User  UserBrief `json:"user"`
	Token string    `json:"token"`
}
