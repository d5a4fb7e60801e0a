package dto

import (
	"time"

	"github.com/google/uuid"
)

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type ReaderActivity struct {
	ReaderID uuid.UUID `json:"reader_id"`
	Name     string    `json:"name"`
	Reviews  int64     `json:"reviews"`
}

type LatestRecitation struct {
	ID          uuid.UUID `json:"id"`
	SurahName   string    `json:"surah_name"`
	AyahFrom    int       `json:"ayah_from"`
	AyahTo      int       `json:"ayah_to"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	StudentName string    `json:"student_name"`
	ReaderName  *string   `json:"reader_name,omitempty"`
}

type AdminStats struct {
	TotalUsers          int64              `json:"total_users"`
	TotalStudents       int64              `json:"total_students"`
	ActiveStudents      int64              `json:"active_students"`
	ApprovedReaders     int64              `json:"approved_readers"`
	NewRegistrations    int64              `json:"new_registrations"`
	TotalRecitations    int64              `json:"total_recitations"`
	PendingRecitations  int64              `json:"pending_recitations"`
	RecitationsToday    int64              `json:"recitations_today"`
	CompletedSessions   int64              `json:"completed_sessions"`
	PendingReaderApps   int64              `json:"pending_reader_apps"`
	StatusDistribution  map[string]int64   `json:"status_distribution"`
	RecitationsOverTime []DailyCount       `json:"recitations_over_time"`
	ReadersActivity     []ReaderActivity   `json:"readers_activity"`
	LatestRecitations   []LatestRecitation `json:"latest_recitations"`
}

/* ===================== PUBLIC ===================== */

type PublicStats struct {
	MasteredStudents int64 `json:"mastered_students"`
	TotalStudents    int64 `json:"total_students"`
}

/* ===================== REPORTS ===================== */

type MonthlyCount struct {
	Month    string `json:"month"` // YYYY-MM
	Total    int64  `json:"total"`
	Mastered int64  `json:"mastered"`
}

type RecitationReport struct {
	Total         int64          `json:"total"`
	Mastered      int64          `json:"mastered"`
	NeedsSession  int64          `json:"needs_session"`
	Pending       int64          `json:"pending"`
	InReview      int64          `json:"in_review"`
	Rejected      int64          `json:"rejected"`
	SessionBooked int64          `json:"session_booked"`
	MasteryRate   float64        `json:"mastery_rate"`
	ByMonth       []MonthlyCount `json:"by_month"`
	Daily         []DailyCount   `json:"daily"`
}

type SessionReport struct {
	Total       int64 `json:"total"`
	Completed   int64 `json:"completed"`
	Cancelled   int64 `json:"cancelled"`
	NoShow      int64 `json:"no_show"`
	Pending     int64 `json:"pending"`
	AvgDuration int64 `json:"avg_duration"`
}

type GenderCount struct {
	Gender *string `json:"gender"`
	Count  int64   `json:"count"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

type UserReport struct {
	TotalStudents int64         `json:"total_students"`
	TotalReaders  int64         `json:"total_readers"`
	Gender        []GenderCount `json:"gender"`
	ByCity        []CityCount   `json:"by_city"`
}

type TopReviewer struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	ReviewsCount  int64     `json:"reviews_count"`
	AvgScore      float64   `json:"avg_score"`
	MasteredCount int64     `json:"mastered_count"`
}

type TopSessionReader struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	SessionsCount     int64     `json:"sessions_count"`
	CompletedSessions int64     `json:"completed_sessions"`
}

type TopContributor struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	AvatarURL         *string   `json:"avatar_url,omitempty"`
	TotalContribution int64     `json:"total_contribution"`
	Reviews           int64     `json:"reviews"`
	Sessions          int64     `json:"sessions"`
}

type TopStudent struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Recitations int64     `json:"recitations"`
	Bookings    int64     `json:"bookings"`
}

type MasteryPoint struct {
	Week        string  `json:"week"`       // MM/DD awal minggu
	WeekStart   string  `json:"week_start"` // YYYY-MM-DD
	MasteryRate float64 `json:"mastery_rate"`
	Total       int64   `json:"total"`
}

type Reports struct {
	Recitations       RecitationReport   `json:"recitations"`
	Sessions          SessionReport      `json:"sessions"`
	Users             UserReport         `json:"users"`
	TopReviewers      []TopReviewer      `json:"top_reviewers"`
	TopSessionReaders []TopSessionReader `json:"top_session_readers"`
	TopContributors   []TopContributor   `json:"top_contributors"`
	TopStudents       []TopStudent       `json:"top_students"`
	Certificates      int64              `json:"certificates"`
	EmailsSent        int64              `json:"emails_sent"`
	MasteryTrend      []MasteryPoint     `json:"mastery_trend"`
}
