package dto

import (
	"github.com/google/uuid"

	"itqan_backend/internals/features/home/notifications/model"
)

// NewNotification input internal untuk service.Create (bukan request body)
type NewNotification struct {
	UserID              uuid.UUID
	Type                string
	Title               string
	Message             string
	Category            string
	Link                string
	RelatedRecitationID *uuid.UUID
	RelatedBookingID    *uuid.UUID
}

// 🔄 Konversi ke model untuk user tertentu
func (n NewNotification) ToModel(userID uuid.UUID) *model.NotificationModel {
	m := &model.NotificationModel{
		UserID:              userID,
		Type:                n.Type,
		Title:               n.Title,
		Message:             n.Message,
		Category:            n.Category,
		RelatedRecitationID: n.RelatedRecitationID,
		RelatedBookingID:    n.RelatedBookingID,
	}
	if m.Category == "" {
		m.Category = "general"
	}
	if n.Link != "" {
		link := n.Link
		m.Link = &link
	}
	return m
}

type NotificationListResponse struct {
	Notifications []model.NotificationModel `json:"notifications"`
	UnreadCount   int64                     `json:"unread_count"`
}
