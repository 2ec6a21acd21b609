package response

import (
	"internlink/internal/usecase/queries"
)

type NotificationResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Message          string  `json:"message"`
	RelatedPostingID *string `json:"related_posting_id,omitempty"`
	RelatedActorID   *string `json:"related_actor_id,omitempty"`
	Read             bool    `json:"read"`
	CreatedAt        int64   `json:"created_at"`
}

func FromNotificationView(v *queries.NotificationView) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        v.ID.String(),
		Type:      v.Type,
		Title:     v.Title,
		Message:   v.Message,
		Read:      v.Read,
		CreatedAt: v.CreatedAt.Unix(),
	}
	if v.RelatedPostingID != nil {
		s := v.RelatedPostingID.String()
		resp.RelatedPostingID = &s
	}
	if v.RelatedActorID != nil {
		s := v.RelatedActorID.String()
		resp.RelatedActorID = &s
	}
	return resp
}

func FromNotificationList(items []*queries.NotificationView) []*NotificationResponse {
	res := make([]*NotificationResponse, len(items))
	for i, it := range items {
		res[i] = FromNotificationView(it)
	}
	return res
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
