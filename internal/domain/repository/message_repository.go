package repository

import (
	"context"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

// MessageRepository define el puerto de persistencia para Message.
type MessageRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	// ListByUser bandeja de entrada y salida combinadas (emisor O destinatario), más reciente primero.
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Message, error)
	// ListUnreadByUser solo mensajes recibidos y no leídos, más reciente primero.
	ListUnreadByUser(ctx context.Context, userID string) ([]*entity.Message, error)
	Create(ctx context.Context, message *entity.Message) error
	// MarkAsRead marca is_read = true sin condiciones (idempotente).
	MarkAsRead(ctx context.Context, id int64) (*entity.Message, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
