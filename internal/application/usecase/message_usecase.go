package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

// MessageUseCase bandeja de mensajes internos. userID es siempre el usuario de la sesión.
type MessageUseCase struct {
	repo repository.MessageRepository
}

// NewMessageUseCase construye el caso de uso.
func NewMessageUseCase(repo repository.MessageRepository) *MessageUseCase {
	return &MessageUseCase{repo: repo}
}

// List mensajes enviados o recibidos por userID; con unread solo los recibidos sin leer.
func (uc *MessageUseCase) List(ctx context.Context, userID string, unread bool, limit int) ([]dto.MessageResponse, error) {
	var (
		list []*entity.Message
		err  error
	)
	if unread {
		list, err = uc.repo.ListUnreadByUser(ctx, userID)
		if err == nil && limit > 0 && len(list) > limit {
			list = list[:limit]
		}
	} else {
		list, err = uc.repo.ListByUser(ctx, userID, limit)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.MessageResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.ToMessageResponse(m))
	}
	return items, nil
}

// GetByID solo para emisor o destinatario.
func (uc *MessageUseCase) GetByID(ctx context.Context, id int64, userID string) (*dto.MessageResponse, error) {
	m, err := uc.load(ctx, id, userID, (*entity.Message).IsParticipant)
	if err != nil || m == nil {
		return nil, err
	}
	return dto.ToMessageResponse(m), nil
}

// Send crea un mensaje de senderID. domain.ErrInvalidReference si el destinatario no existe.
func (uc *MessageUseCase) Send(ctx context.Context, senderID string, in dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	m := &entity.Message{
		SenderID:   senderID,
		ReceiverID: in.ReceiverID,
		Content:    in.Content,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return dto.ToMessageResponse(m), nil
}

// MarkAsRead solo el destinatario puede marcar; repetirlo no cambia nada.
func (uc *MessageUseCase) MarkAsRead(ctx context.Context, id int64, userID string) (*dto.MessageResponse, error) {
	m, err := uc.load(ctx, id, userID, (*entity.Message).IsReceiver)
	if err != nil || m == nil {
		return nil, err
	}
	updated, err := uc.repo.MarkAsRead(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToMessageResponse(updated), nil
}

// Delete solo para emisor o destinatario.
func (uc *MessageUseCase) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	m, err := uc.load(ctx, id, userID, (*entity.Message).IsParticipant)
	if err != nil || m == nil {
		return false, err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *MessageUseCase) load(ctx context.Context, id int64, userID string, allowed func(*entity.Message, string) bool) (*entity.Message, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	if !allowed(m, userID) {
		return nil, domain.ErrForbidden
	}
	return m, nil
}
