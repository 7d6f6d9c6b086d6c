package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

func TestSession_Anonima(t *testing.T) {
	var s *entity.Session
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin(nil))
	assert.Equal(t, "", s.UserID())
	assert.Nil(t, s.ActorID())
}

func TestSession_Provider(t *testing.T) {
	s := entity.NewProviderSession(entity.ProviderClaims{Subject: "u-1"})
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdminSession())
	assert.Equal(t, "u-1", s.UserID())
	assert.Equal(t, "u-1", *s.ActorID())

	assert.False(t, s.IsAdmin(nil), "sin usuario persistido no hay rol")
	assert.False(t, s.IsAdmin(&entity.User{ID: "u-1", Role: entity.RoleUser}))
	assert.True(t, s.IsAdmin(&entity.User{ID: "u-1", Role: entity.RoleAdmin}))
	assert.False(t, s.IsAdmin(&entity.User{ID: "otro", Role: entity.RoleAdmin}),
		"el rol de otro usuario no concede permisos")
}

func TestSession_ProviderSinSubject_NoAutenticada(t *testing.T) {
	s := entity.NewProviderSession(entity.ProviderClaims{})
	assert.False(t, s.IsAuthenticated())
}

func TestSession_Admin(t *testing.T) {
	s := entity.NewAdminSession("admin-1", time.Now())
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdminSession())
	assert.True(t, s.IsAdmin(nil))
	assert.Equal(t, "", s.UserID())
	assert.Equal(t, "admin-1", s.Subject())
	assert.Nil(t, s.ActorID(), "la sesión admin no referencia users")
}
