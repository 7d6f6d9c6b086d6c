package entity

import "time"

// Message mensaje interno entre usuarios.
// ReceiverID es nullable en la base; la API exige destinatario (ver DESIGN.md).
type Message struct {
	ID         int64
	SenderID   string
	ReceiverID *string
	Content    string
	IsRead     bool
	CreatedAt  time.Time
}

// IsReceiver informa si userID es el destinatario.
func (m *Message) IsReceiver(userID string) bool {
	return m.ReceiverID != nil && *m.ReceiverID == userID
}

// IsParticipant informa si userID envió o recibió el mensaje.
func (m *Message) IsParticipant(userID string) bool {
	return m.SenderID == userID || m.IsReceiver(userID)
}
