package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"itqan_backend/internals/constants"
	notifDto "itqan_backend/internals/features/home/notifications/dto"
	notifService "itqan_backend/internals/features/home/notifications/service"
	"itqan_backend/internals/features/recitations/recitations/dto"
	"itqan_backend/internals/features/recitations/recitations/model"
	emailModel "itqan_backend/internals/features/system/email_templates/model"
	emailService "itqan_backend/internals/features/system/email_templates/service"
	"itqan_backend/internals/helpers/dbtype"
)

// SubmitReview upsert review milik recitation, lalu status recitation = verdict.
// Reader lain yang sudah ditugaskan -> 403.
func SubmitReview(ctx context.Context, db *gorm.DB, readerID, recitationID uuid.UUID, req dto.ReviewRequest) (*model.ReviewModel, error) {
	if req.Verdict != constants.RecitationMastered && req.Verdict != constants.RecitationNeedsSession {
		return nil, fiber.NewError(fiber.StatusBadRequest, "القرار يجب أن يكون 'mastered' أو 'needs_session'")
	}

	markers := datatypes.JSON("[]")
	if len(req.ErrorMarkers) > 0 && string(req.ErrorMarkers) != "null" {
		markers = datatypes.JSON(req.ErrorMarkers)
	}
	var feedback *string
	if f := strings.TrimSpace(req.Feedback); f != "" {
		feedback = &f
	}

	var (
		rec    model.RecitationModel
		review model.ReviewModel
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", recitationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRecitationNotFound
			}
			return err
		}
		if rec.AssignedReaderID != nil && *rec.AssignedReaderID != readerID {
			return fiber.NewError(fiber.StatusForbidden, "هذه التلاوة ليست مسندة إليك")
		}

		if err := tx.Where("recitation_id = ?", recitationID).Limit(1).Find(&review).Error; err != nil {
			return err
		}
		isNew := review.ID == uuid.Nil
		review.RecitationID = recitationID
		if isNew {
			review.ReaderID = readerID
		}
		review.TajweedScore = req.TajweedScore
		review.PronunciationScore = req.PronunciationScore
		review.FluencyScore = req.FluencyScore
		review.MemorizationScore = req.MemorizationScore
		review.OverallScore = req.OverallScore
		review.DetailedFeedback = feedback
		review.Verdict = req.Verdict
		review.ErrorMarkers = markers
		if err := tx.Save(&review).Error; err != nil {
			return err
		}

		fields := map[string]any{
			"status":      req.Verdict,
			"reviewed_at": nowUTC(),
		}
		if rec.AssignedReaderID == nil {
			fields["assigned_reader_id"] = readerID
			fields["assigned_at"] = nowUTC()
		}
		if req.Tags != nil {
			fields["review_tags"] = dbtype.StringArray(req.Tags)
		}
		if err := tx.Model(&model.RecitationModel{}).Where("id = ?", recitationID).Updates(fields).Error; err != nil {
			return err
		}

		if isNew {
			return tx.Table("reader_profiles").Where("user_id = ?", readerID).
				Update("total_reviews", gorm.Expr("total_reviews + 1")).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notifyVerdict(ctx, db, rec.StudentID, recitationID, req.Verdict)
	return &review, nil
}

func notifyVerdict(ctx context.Context, db *gorm.DB, studentID, recitationID uuid.UUID, verdict string) {
	var student struct {
		Name  string
		Email string
	}
	if err := db.WithContext(ctx).Table("users").Select("name, email").
		Where("id = ?", studentID).Limit(1).Scan(&student).Error; err != nil || student.Email == "" {
		return
	}

	vars := map[string]string{"studentName": student.Name}
	n := notifDto.NewNotification{
		UserID:              studentID,
		Category:            constants.NotifCategoryRecitation,
		RelatedRecitationID: &recitationID,
	}
	if verdict == constants.RecitationMastered {
		emailService.SendTemplate(ctx, db, emailModel.KeyRecitationMastered, student.Email, vars)
		n.Type = "mastered"
		n.Title = "مبروك! لقد أتقنت سورة الفاتحة ✅"
		n.Message = "تمت مراجعة تلاوتك وحكم عليها بالإتقان. يمكنك الآن استخراج شهادتك."
		n.Link = "/student"
	} else {
		emailService.SendTemplate(ctx, db, emailModel.KeyRecitationNeedsSession, student.Email, vars)
		n.Type = "needs_session"
		n.Title = "تلاوتك تحتاج جلسة تصحيح 📅"
		n.Message = "قام المقرئ بمراجعة تلاوتك. تحتاج إلى جلسة تصحيح مباشرة. احجز موعدك الآن."
		n.Link = "/student/booking"
	}
	notifService.Create(ctx, db, n)
}
