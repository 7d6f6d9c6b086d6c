package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/memory"
)

func ptr[T any](v T) *T { return &v }

// fixture: dos usuarios y dos sectores.
func seed(t *testing.T) *memory.Repos {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepos()
	now := time.Now()
	for _, id := range []string{"u-1", "u-2"} {
		_, err := repos.Users.Upsert(ctx, &entity.User{ID: id, Email: ptr(id + "@example.com"), UpdatedAt: now})
		require.NoError(t, err)
	}
	for _, name := range []string{"Radiología", "Urgencias"} {
		require.NoError(t, repos.Sectors.Create(ctx, &entity.Sector{Name: name, CreatedAt: now}))
	}
	return repos
}

func newPermuta(t *testing.T, repos *memory.Repos, createdAt time.Time) *entity.Permuta {
	t.Helper()
	p := &entity.Permuta{UserID: "u-1", FromSectorID: 1, ToSectorID: 2, Status: entity.PermutaPending, CreatedAt: createdAt}
	require.NoError(t, repos.Permutas.Create(context.Background(), p))
	return p
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

func TestUpsert_ConservaRolYPlanExistentes(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()

	_, err := repos.Users.UpdateRole(ctx, "u-1", entity.RoleAdmin, time.Now())
	require.NoError(t, err)

	u, err := repos.Users.Upsert(ctx, &entity.User{ID: "u-1", FirstName: ptr("Ana"), UpdatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role, "el upsert sin rol no debe degradar al admin")
	assert.Equal(t, entity.AccountFree, u.AccountType)
	assert.Equal(t, "u-1@example.com", *u.Email, "email nil conserva el valor anterior")
	assert.Equal(t, "Ana", *u.FirstName)
}

func TestUpsert_EmailDuplicado(t *testing.T) {
	repos := seed(t)
	_, err := repos.Users.Upsert(context.Background(), &entity.User{ID: "u-3", Email: ptr("u-1@example.com")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDowngradeExpired_SoloPlanesVencidos(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	now := time.Now()

	_, err := repos.Users.UpdateAccount(ctx, "u-1", entity.AccountPremium, ptr(now.Add(-time.Hour)), now)
	require.NoError(t, err)
	_, err = repos.Users.UpdateAccount(ctx, "u-2", entity.AccountProI, ptr(now.Add(time.Hour)), now)
	require.NoError(t, err)

	n, err := repos.Users.DowngradeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	u1, _ := repos.Users.GetByID(ctx, "u-1")
	assert.Equal(t, entity.AccountFree, u1.AccountType)
	assert.Nil(t, u1.AccountExpiresAt)
	u2, _ := repos.Users.GetByID(ctx, "u-2")
	assert.Equal(t, entity.AccountProI, u2.AccountType)
}

func TestDeleteUser_ConPermutas_ErrReferenced(t *testing.T) {
	repos := seed(t)
	newPermuta(t, repos, time.Now())
	_, err := repos.Users.Delete(context.Background(), "u-1")
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

// ── Sectores ─────────────────────────────────────────────────────────────────

func TestSectorUpdate_SoloCamposPresentes(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	_, err := repos.Sectors.Update(ctx, 1, entity.SectorPatch{City: ptr("Bogotá")}, time.Now())
	require.NoError(t, err)

	s, err := repos.Sectors.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Radiología", s.Name)
	assert.Equal(t, "Bogotá", *s.City)

	missing, err := repos.Sectors.Update(ctx, 99, entity.SectorPatch{City: ptr("x")}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSectorDelete_Referenciado_ErrReferenced(t *testing.T) {
	repos := seed(t)
	newPermuta(t, repos, time.Now())

	ok, err := repos.Sectors.Delete(context.Background(), 1)
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestSectorDelete_ActividadQuedaSinSector(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	require.NoError(t, repos.Activities.Create(ctx, &entity.Activity{SectorID: ptr(int64(2)), Type: entity.ActivitySectorCreated}))

	ok, err := repos.Sectors.Delete(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := repos.Activities.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].SectorID)
}

// ── Permutas ─────────────────────────────────────────────────────────────────

func TestPermutaCreate_ReferenciaInexistente(t *testing.T) {
	repos := seed(t)
	err := repos.Permutas.Create(context.Background(), &entity.Permuta{UserID: "u-1", FromSectorID: 1, ToSectorID: 42})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestPermutaUpdateStatus_CompletedAt(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	p := newPermuta(t, repos, time.Now())

	got, err := repos.Permutas.UpdateStatus(ctx, p.ID, entity.PermutaApproved, time.Now())
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt, "approved no fija completedAt")

	done := time.Now()
	got, err = repos.Permutas.UpdateStatus(ctx, p.ID, entity.PermutaCompleted, done)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(done))

	got, err = repos.Permutas.UpdateStatus(ctx, p.ID, entity.PermutaCancelled, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt, "completedAt nunca se borra")
	assert.True(t, got.CompletedAt.Equal(done))

	missing, err := repos.Permutas.UpdateStatus(ctx, 999, entity.PermutaCompleted, time.Now())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPermutaList_MasRecientePrimeroYLimite(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	base := time.Now()
	old := newPermuta(t, repos, base.Add(-2*time.Hour))
	mid := newPermuta(t, repos, base.Add(-time.Hour))
	recent := newPermuta(t, repos, base)

	list, err := repos.Permutas.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{recent.ID, mid.ID, old.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	limited, err := repos.Permutas.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = repos.Permutas.UpdateStatus(ctx, mid.ID, entity.PermutaApproved, base)
	require.NoError(t, err)
	approved, err := repos.Permutas.ListByStatus(ctx, entity.PermutaApproved, 0)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, mid.ID, approved[0].ID)
}

// ── Mensajes ─────────────────────────────────────────────────────────────────

func TestMessagesByUser_UnionSinDuplicados(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	base := time.Now()

	sent := &entity.Message{SenderID: "u-1", ReceiverID: ptr("u-2"), Content: "hola", CreatedAt: base.Add(-time.Minute)}
	received := &entity.Message{SenderID: "u-2", ReceiverID: ptr("u-1"), Content: "respuesta", CreatedAt: base}
	self := &entity.Message{SenderID: "u-1", ReceiverID: ptr("u-1"), Content: "nota", CreatedAt: base.Add(-2 * time.Minute)}
	for _, m := range []*entity.Message{sent, received, self} {
		require.NoError(t, repos.Messages.Create(ctx, m))
	}

	list, err := repos.Messages.ListByUser(ctx, "u-1", 0)
	require.NoError(t, err)
	require.Len(t, list, 3, "un mensaje a sí mismo aparece una sola vez")
	assert.Equal(t, []int64{received.ID, sent.ID, self.ID}, []int64{list[0].ID, list[1].ID, list[2].ID})

	unread, err := repos.Messages.ListUnreadByUser(ctx, "u-2")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, sent.ID, unread[0].ID)
}

func TestMarkAsRead_Idempotente(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	m := &entity.Message{SenderID: "u-1", ReceiverID: ptr("u-2"), Content: "hola"}
	require.NoError(t, repos.Messages.Create(ctx, m))

	first, err := repos.Messages.MarkAsRead(ctx, m.ID)
	require.NoError(t, err)
	second, err := repos.Messages.MarkAsRead(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, first.IsRead)
	assert.Equal(t, first, second)
}

func TestMessageCreate_DestinatarioInexistente(t *testing.T) {
	repos := seed(t)
	err := repos.Messages.Create(context.Background(), &entity.Message{SenderID: "u-1", ReceiverID: ptr("nadie"), Content: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

// ── Transacciones ────────────────────────────────────────────────────────────

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	p := newPermuta(t, repos, time.Now())
	boom := errors.New("boom")

	err := repos.Tx.Run(ctx, func(tx repository.TxRepos) error {
		if _, err := tx.Permutas.UpdateStatus(ctx, p.ID, entity.PermutaCompleted, time.Now()); err != nil {
			return err
		}
		require.NoError(t, tx.Activities.Create(ctx, &entity.Activity{Type: entity.ActivityPermutaCompleted}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.Permutas.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PermutaPending, got.Status)
	assert.Nil(t, got.CompletedAt)

	acts, err := repos.Activities.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, acts)
}

func TestTxRunner_CommitConservaEscrituras(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()

	err := repos.Tx.Run(ctx, func(tx repository.TxRepos) error {
		return tx.Sectors.Create(ctx, &entity.Sector{Name: "Pediatría"})
	})
	require.NoError(t, err)

	n, err := repos.Dashboard.CountSectors(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTxRunner_RollbackNoPierdeEscriturasConcurrentes(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	const n = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			err := repos.Tx.Run(ctx, func(tx repository.TxRepos) error {
				return tx.Permutas.Create(ctx, &entity.Permuta{UserID: "u-1", FromSectorID: 1, ToSectorID: 99, Status: entity.PermutaPending})
			})
			assert.ErrorIs(t, err, domain.ErrInvalidReference)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			assert.NoError(t, repos.Messages.Create(ctx, &entity.Message{SenderID: "u-1", ReceiverID: ptr("u-2"), Content: "hola"}))
		}
	}()
	wg.Wait()

	msgs, err := repos.Messages.ListByUser(ctx, "u-2", 0)
	require.NoError(t, err)
	require.Len(t, msgs, n, "ningún mensaje confirmado puede desaparecer")
	ids := map[int64]bool{}
	for _, m := range msgs {
		assert.False(t, ids[m.ID], "id %d repetido", m.ID)
		ids[m.ID] = true
	}

	perms, err := repos.Permutas.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, perms)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func TestDashboard_ActivasMasCompletadasNoSuperaTotal(t *testing.T) {
	repos := seed(t)
	ctx := context.Background()
	statuses := []entity.PermutaStatus{
		entity.PermutaPending, entity.PermutaApproved, entity.PermutaCompleted, entity.PermutaRejected,
	}
	for _, st := range statuses {
		p := newPermuta(t, repos, time.Now())
		_, err := repos.Permutas.UpdateStatus(ctx, p.ID, st, time.Now())
		require.NoError(t, err)
	}

	active, err := repos.Dashboard.CountPermutasByStatus(ctx, entity.ActivePermutaStatuses...)
	require.NoError(t, err)
	completed, err := repos.Dashboard.CountPermutasByStatus(ctx, entity.PermutaCompleted)
	require.NoError(t, err)
	total, err := repos.Dashboard.CountPermutasByStatus(ctx, entity.PermutaStatuses...)
	require.NoError(t, err)

	assert.Equal(t, int64(2), active)
	assert.Equal(t, int64(1), completed)
	assert.LessOrEqual(t, active+completed, total)

	rate, err := repos.Dashboard.CompletionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "25", rate.String())
}
