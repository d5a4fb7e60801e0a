package constants

// Recitation
const (
	RecitationPending       = "pending"
	RecitationInReview      = "in_review"
	RecitationMastered      = "mastered"
	RecitationNeedsSession  = "needs_session"
	RecitationSessionBooked = "session_booked"
	RecitationRejected      = "rejected"
)

var RecitationStatuses = []string{
	RecitationPending,
	RecitationInReview,
	RecitationMastered,
	RecitationNeedsSession,
	RecitationSessionBooked,
	RecitationRejected,
}

// Booking
const (
	BookingPending     = "pending"
	BookingConfirmed   = "confirmed"
	BookingCompleted   = "completed"
	BookingCancelled   = "cancelled"
	BookingNoShow      = "no_show"
	BookingRescheduled = "rescheduled"
)

var BookingStatuses = []string{
	BookingPending,
	BookingConfirmed,
	BookingCompleted,
	BookingCancelled,
	BookingNoShow,
	BookingRescheduled,
}

// status yang "memakan" slot reader
var BookingActiveStatuses = []string{BookingPending, BookingConfirmed}

// Reschedule request
const (
	RescheduleRequested = "pending"
	RescheduleAccepted  = "accepted"
	RescheduleRejected  = "rejected"
)

// Notification category
const (
	NotifCategoryRecitation = "recitation"
	NotifCategorySession    = "session"
	NotifCategoryAccount    = "account"
	NotifCategoryGeneral    = "general"
)

// Site content types
const (
	ContentArticle = "article"
	ContentSermon  = "sermon"
	ContentLesson  = "lesson"
	ContentBook    = "book"
)

var ContentTypes = []string{ContentArticle, ContentSermon, ContentLesson, ContentBook}

func InSlice(v string, list []string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
