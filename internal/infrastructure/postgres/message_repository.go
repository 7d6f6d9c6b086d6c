package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

const messageColumns = `id, sender_id, receiver_id, content, is_read, created_at`

// MessageRepo implementación de MessageRepository sobre PostgreSQL.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// GetByID obtiene un mensaje por ID.
func (r *MessageRepo) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	m, err := scanMessage(r.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

// ListByUser mensajes enviados o recibidos; cada fila aparece una sola vez.
func (r *MessageRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Message, error) {
	return r.list(ctx, `SELECT `+messageColumns+` FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2`, userID, limitArg(limit))
}

// ListUnreadByUser mensajes recibidos sin leer.
func (r *MessageRepo) ListUnreadByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	return r.list(ctx, `SELECT `+messageColumns+` FROM messages
		WHERE receiver_id = $1 AND NOT is_read
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *MessageRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Message, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Create persiste el mensaje; domain.ErrInvalidReference si emisor o destinatario no existen.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, is_read, created_at)
		VALUES ($1, $2, $3, false, $4)
		RETURNING id, is_read, created_at`
	err := r.q.QueryRow(ctx, query, m.SenderID, m.ReceiverID, m.Content, m.CreatedAt).
		Scan(&m.ID, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return translateWriteError("insert message", err, domain.ErrInvalidReference)
	}
	return nil
}

// MarkAsRead marca el mensaje como leído; (nil, nil) si no existe.
func (r *MessageRepo) MarkAsRead(ctx context.Context, id int64) (*entity.Message, error) {
	m, err := scanMessage(r.q.QueryRow(ctx,
		`UPDATE messages SET is_read = true WHERE id = $1 RETURNING `+messageColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	return m, nil
}

// Delete elimina un mensaje.
func (r *MessageRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete message: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanMessage(row pgxScanner) (*entity.Message, error) {
	var m entity.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
