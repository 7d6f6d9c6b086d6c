package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

func TestParsePermutaStatus(t *testing.T) {
	for _, st := range entity.PermutaStatuses {
		got, ok := entity.ParsePermutaStatus(string(st))
		assert.True(t, ok, st)
		assert.Equal(t, st, got)
	}
	for _, bad := range []string{"", "done", "Completed", " pending"} {
		_, ok := entity.ParsePermutaStatus(bad)
		assert.False(t, ok, "%q no pertenece al dominio", bad)
	}
}

func TestPermutaStatus_IsActive(t *testing.T) {
	assert.True(t, entity.PermutaPending.IsActive())
	assert.True(t, entity.PermutaAnalyzing.IsActive())
	assert.True(t, entity.PermutaApproved.IsActive())
	assert.False(t, entity.PermutaCompleted.IsActive())
	assert.False(t, entity.PermutaRejected.IsActive())
	assert.False(t, entity.PermutaCancelled.IsActive())
}

func TestStatusActivityType(t *testing.T) {
	cases := map[entity.PermutaStatus]string{
		entity.PermutaCompleted: "permuta_completed",
		entity.PermutaCancelled: "permuta_cancelled",
		entity.PermutaApproved:  "permuta_approved",
		entity.PermutaPending:   "permuta_pending",
		entity.PermutaAnalyzing: "permuta_analyzing",
		entity.PermutaRejected:  "permuta_rejected",
	}
	for st, want := range cases {
		assert.Equal(t, want, entity.StatusActivityType(st))
	}
	assert.Equal(t, "Permuta #7 status changed to approved",
		entity.StatusActivityDescription(7, entity.PermutaApproved))
}

func TestPermuta_ApplyStatus_CompletedAtSeConserva(t *testing.T) {
	p := &entity.Permuta{ID: 1, Status: entity.PermutaPending}
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	p.ApplyStatus(entity.PermutaApproved, t0)
	assert.Nil(t, p.CompletedAt)

	p.ApplyStatus(entity.PermutaCompleted, t0.Add(time.Hour))
	require.NotNil(t, p.CompletedAt)
	completed := *p.CompletedAt

	p.ApplyStatus(entity.PermutaCancelled, t0.Add(2*time.Hour))
	require.NotNil(t, p.CompletedAt, "completedAt no se borra al salir de completed")
	assert.Equal(t, completed, *p.CompletedAt)
	assert.Equal(t, t0.Add(2*time.Hour), p.UpdatedAt)
}
