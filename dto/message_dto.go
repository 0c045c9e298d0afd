package dto

import "warbler/models"

// MessageDTO is a Data Transfer Object for message responses.
type MessageDTO struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	PubDate  int64  `json:"pub_date"`
	UserID   uint   `json:"user_id"`
	Username string `json:"user"`
}

func FromMessage(m models.Message) MessageDTO {
	return MessageDTO{
		ID:       m.ID,
		Text:     m.Text,
		PubDate:  m.Timestamp.Unix(),
		UserID:   m.UserID,
		Username: m.User.Username,
	}
}

func FromMessages(messages []models.Message) []MessageDTO {
	out := make([]MessageDTO, len(messages))
	for i, m := range messages {
		out[i] = FromMessage(m)
	}
	return out
}
