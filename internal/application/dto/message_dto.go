package dto

import (
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// CreateMessageRequest entrada para enviar un mensaje; el emisor sale de la sesión.
type CreateMessageRequest struct {
	ReceiverID *string `json:"receiverId"`
	Content    string  `json:"content"`
}

// Validate destinatario y contenido requeridos (no hay mensajes de difusión).
func (r CreateMessageRequest) Validate() error {
	var errs ValidationErrors
	if r.ReceiverID == nil || blank(*r.ReceiverID) {
		errs.add("receiverId", "receiverId es requerido")
	}
	if blank(r.Content) {
		errs.add("content", "content es requerido")
	} else if len(r.Content) > 5000 {
		errs.add("content", "excede la longitud máxima")
	}
	return errs.Err()
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID *string   `json:"receiverId"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToMessageResponse convierte la entidad.
func ToMessageResponse(m *entity.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
	}
}
