package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	logService "itqan_backend/internals/features/system/activity_logs/service"
	emailModel "itqan_backend/internals/features/system/email_templates/model"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	"itqan_backend/internals/features/users/users/dto"
	"itqan_backend/internals/features/users/users/model"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// ListReaderApplications: pending dulu, lalu terbaru
func ListReaderApplications(ctx context.Context, db *gorm.DB) ([]dto.ReaderApplication, error) {
	out := []dto.ReaderApplication{}
	err := db.WithContext(ctx).
		Table("users u").
		Select(`u.id, u.name, u.email, u.phone, u.city, u.gender, u.approval_status, u.created_at,
			rp.full_name_triple, rp.qualification, rp.memorized_parts, rp.years_of_experience,
			rp.certificate_file_url`).
		Joins("LEFT JOIN reader_profiles rp ON rp.user_id = u.id").
		Where("u.role = ?", constants.RoleReader).
		Order(gormPendingFirst()).
		Order("u.created_at DESC").
		Scan(&out).Error
	return out, err
}

func gormPendingFirst() string {
	return "CASE WHEN u.approval_status = '" + constants.ApprovalPending + "' THEN 0 ELSE 1 END"
}

// DecideReaderApplication: approve|reject untuk reader yang masih pending_approval
func DecideReaderApplication(ctx context.Context, db *gorm.DB, adminID, userID uuid.UUID, action, ip string) (*model.UserModel, error) {
	var status, templateKey, notifType, title, message, logAction string
	active := false
	switch action {
	case ActionApprove:
		status, templateKey = constants.ApprovalApproved, emailModel.KeyReaderApproved
		notifType, title, message = "account_approved", "تم اعتماد حسابك", "تم اعتماد حسابك كمقرئ، يمكنك البدء بمراجعة التلاوات"
		active, logAction = true, "reader_approved"
	case ActionReject:
		status, templateKey = constants.ApprovalRejected, emailModel.KeyReaderRejected
		notifType, title, message = "account_rejected", "طلب التسجيل", "نعتذر، لم يتم اعتماد طلبك حالياً"
		logAction = "reader_rejected"
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "إجراء غير صحيح")
	}

	var u model.UserModel
	err := db.WithContext(ctx).
		Where("id = ? AND role = ? AND approval_status = ?", userID, constants.RoleReader, constants.ApprovalPending).
		Limit(1).Find(&u).Error
	if err != nil {
		return nil, err
	}
	if u.ID == uuid.Nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "الطلب غير موجود أو تمت معالجته")
	}

	if err := db.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", u.ID).
		Updates(map[string]any{"approval_status": status, "is_active": active}).Error; err != nil {
		return nil, err
	}
	u.ApprovalStatus, u.IsActive = status, active

	emailService.SendTemplate(ctx, db, templateKey, u.Email, map[string]string{"readerName": u.Name})
	notifService.Create(ctx, db, notifDto.NewNotification{
		UserID:   u.ID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Category: constants.NotifCategoryAccount,
	})
	logService.Log(ctx, db, logService.Entry{
		UserID:      &adminID,
		Action:      logAction,
		EntityType:  "user",
		EntityID:    u.ID.String(),
		Description: "مراجعة طلب مقرئ: " + action,
		IPAddress:   ip,
	})
	return &u, nil
}
