package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

// MessageRepo mensajes en memoria.
type MessageRepo struct {
	s *Store
}

func (r *MessageRepo) GetByID(_ context.Context, id int64) (*entity.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.data.messages[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MessageRepo) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Message, error) {
	return r.filter(limit, func(m *entity.Message) bool { return m.IsParticipant(userID) }), nil
}

func (r *MessageRepo) ListUnreadByUser(_ context.Context, userID string) ([]*entity.Message, error) {
	return r.filter(0, func(m *entity.Message) bool { return m.IsReceiver(userID) && !m.IsRead }), nil
}

func (r *MessageRepo) filter(limit int, keep func(*entity.Message) bool) []*entity.Message {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Message, 0)
	for _, m := range r.s.data.messages {
		m := m
		if keep(&m) {
			list = append(list, &m)
		}
	}
	return newestFirst(list, func(m *entity.Message) (time.Time, int64) { return m.CreatedAt, m.ID }, limit)
}

// Create valida que emisor y destinatario existan.
func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[m.SenderID]; !ok {
		return domain.ErrInvalidReference
	}
	if m.ReceiverID != nil {
		if _, ok := r.s.data.users[*m.ReceiverID]; !ok {
			return domain.ErrInvalidReference
		}
	}
	r.s.data.messageSeq++
	m.ID = r.s.data.messageSeq
	m.IsRead = false
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.s.now()
	}
	r.s.data.messages[m.ID] = *m
	return nil
}

func (r *MessageRepo) MarkAsRead(_ context.Context, id int64) (*entity.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.data.messages[id]
	if !ok {
		return nil, nil
	}
	m.IsRead = true
	r.s.data.messages[id] = m
	return &m, nil
}

func (r *MessageRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.messages[id]; !ok {
		return false, nil
	}
	delete(r.s.data.messages, id)
	return true, nil
}
