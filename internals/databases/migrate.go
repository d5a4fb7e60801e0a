package database

import (
	"gorm.io/gorm"

	availabilityModel "itqan_backend/internals/features/bookings/availability/model"
	bookingModel "itqan_backend/internals/features/bookings/bookings/model"
	certificateModel "itqan_backend/internals/features/certificates/certificates/model"
	announcementModel "itqan_backend/internals/features/home/announcements/model"
	notifModel "itqan_backend/internals/features/home/notifications/model"
	convModel "itqan_backend/internals/features/messaging/conversations/model"
	recitationModel "itqan_backend/internals/features/recitations/recitations/model"
	commentModel "itqan_backend/internals/features/site/comments/model"
	contentModel "itqan_backend/internals/features/site/contents/model"
	logModel "itqan_backend/internals/features/system/activity_logs/model"
	analyticsModel "itqan_backend/internals/features/system/analytics/model"
	emailModel "itqan_backend/internals/features/system/email_templates/model"
	settingsModel "itqan_backend/internals/features/system/settings/model"
	authModel "itqan_backend/internals/features/users/auth/model"
	userModel "itqan_backend/internals/features/users/users/model"
)

// Models: urutan mengikuti dependensi FK (users dulu)
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&userModel.ReaderProfileModel{},
		&authModel.UserSessionModel{},
		&authModel.TokenBlacklist{},

		&recitationModel.RecitationModel{},
		&recitationModel.ReviewModel{},

		&availabilityModel.AvailabilitySlotModel{},
		&bookingModel.BookingModel{},
		&bookingModel.BookingCommentModel{},
		&bookingModel.RescheduleRequestModel{},

		&convModel.ConversationModel{},
		&convModel.MessageModel{},

		&notifModel.NotificationModel{},
		&announcementModel.AnnouncementModel{},
		&certificateModel.CertificateDataModel{},

		&settingsModel.SystemSettingModel{},
		&logModel.ActivityLogModel{},
		&emailModel.EmailTemplateModel{},
		&analyticsModel.PageViewModel{},

		&contentModel.ContentModel{},
		&commentModel.CommentModel{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
