package service

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"itqan_backend/internals/features/system/email_templates/model"
)

type defaultTemplate struct {
	Key       string
	NameAr    string
	NameEn    string
	SubjectAr string
	SubjectEn string
	BodyAr    string
	BodyEn    string
	Variables []string
}

var defaultTemplates = []defaultTemplate{
	{
		Key:       model.KeyRecitationMastered,
		NameAr:    "إشعار التلاوة المتقنة",
		NameEn:    "Recitation Mastered Notification",
		SubjectAr: "تهانينا! قراءتك متقنة - منصة إتقان",
		SubjectEn: "Congratulations! Your recitation is mastered",
		BodyAr:    "السلام عليكم {{studentName}}،\n\nتهانينا! تمت مراجعة قراءتك لسورة الفاتحة وهي متقنة ماشاء الله.\nسيتم إشعارك بموعد الحفل الختامي لاحقاً.\n\nبارك الله فيك،\nفريق إتقان",
		BodyEn:    "Hello {{studentName}},\n\nCongratulations! Your recitation of Surah Al-Fatiha is mastered.\nYou will be notified of the closing ceremony later.\n\nBest regards,\nItqaan Team",
		Variables: []string{"studentName"},
	},
	{
		Key:       model.KeyRecitationNeedsSession,
		NameAr:    "إشعار احتياج الجلسة",
		NameEn:    "Needs Session Notification",
		SubjectAr: "تحتاج إلى جلسة تصحيح - منصة إتقان",
		SubjectEn: "You need a correction session",
		BodyAr:    "السلام عليكم {{studentName}}،\n\nتمت مراجعة قراءتك لسورة الفاتحة. تحتاج إلى جلسة تصحيح بسيطة.\nيمكنك حجز الموعد الآن من خلال حسابك.\n\nبارك الله فيك،\nفريق إتقان",
		BodyEn:    "Hello {{studentName}},\n\nYour recitation of Surah Al-Fatiha has been reviewed. You need a simple correction session.\nYou can book your appointment now through your account.\n\nBest regards,\nItqaan Team",
		Variables: []string{"studentName"},
	},
	{
		Key:       model.KeyReaderApproved,
		NameAr:    "اعتماد المقرئ",
		NameEn:    "Reader Approved",
		SubjectAr: "تم اعتماد حسابك كمقرئ - منصة إتقان",
		SubjectEn: "Your reader account has been approved",
		BodyAr:    "السلام عليكم {{readerName}}،\n\nتم اعتماد حسابك كمقرئ في منصة إتقان.\nيمكنك الآن تسجيل الدخول والبدء بمراجعة التسجيلات.\n\nبارك الله فيك،\nفريق إتقان",
		BodyEn:    "Hello {{readerName}},\n\nYour reader account on Itqaan has been approved.\nYou can now log in and start reviewing recitations.\n\nBest regards,\nItqaan Team",
		Variables: []string{"readerName"},
	},
	{
		Key:       model.KeyReaderRejected,
		NameAr:    "رفض المقرئ",
		NameEn:    "Reader Rejected",
		SubjectAr: "بخصوص طلب التسجيل - منصة إتقان",
		SubjectEn: "Regarding your reader application",
		BodyAr:    "السلام عليكم {{readerName}}،\n\nنعتذر، لم يتم اعتماد طلبك حالياً.\nللمزيد من المعلومات يرجى التواصل مع الإدارة.\n\nبارك الله فيك،\nفريق إتقان",
		BodyEn:    "Hello {{readerName}},\n\nWe apologize, your application has not been approved at this time.\nFor more information, please contact administration.\n\nBest regards,\nItqaan Team",
		Variables: []string{"readerName"},
	},
	{
		Key:       model.KeyCertificateIssued,
		NameAr:    "إصدار الشهادة",
		NameEn:    "Certificate Issued",
		SubjectAr: "تم إصدار شهادة الإتقان! - منصة إتقان",
		SubjectEn: "Your Mastery Certificate is Issued!",
		BodyAr:    "السلام عليكم {{studentName}}،\n\nمبارك لك إتقانك سورة الفاتحة! يسرنا إبلاغك بأنه تم إصدار شهادتك الرقمية.\n\nيمكنك عرضها وتحميلها للطباعة من خلال الرابط التالي:\n{{certificateLink}}\n\nنسأل الله أن ينفع بك،\nفريق إتقان",
		BodyEn:    "Hello {{studentName}},\n\nCongratulations on mastering Surah Al-Fatiha! We are pleased to inform you that your digital certificate has been issued.\n\nYou can view and download it for printing using the following link:\n{{certificateLink}}\n\nBest regards,\nItqaan Team",
		Variables: []string{"studentName", "certificateLink"},
	},
}

// SeedDefaults insert template default yang belum ada (ON CONFLICT DO NOTHING).
func SeedDefaults(ctx context.Context, db *gorm.DB) error {
	for _, t := range defaultTemplates {
		vars, _ := json.Marshal(t.Variables)
		row := model.EmailTemplateModel{
			TemplateKey:    t.Key,
			TemplateNameAr: t.NameAr,
			TemplateNameEn: t.NameEn,
			SubjectAr:      t.SubjectAr,
			SubjectEn:      t.SubjectEn,
			BodyAr:         t.BodyAr,
			BodyEn:         t.BodyEn,
			Variables:      datatypes.JSON(vars),
			IsActive:       true,
		}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "template_key"}}, DoNothing: true}).
			Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
