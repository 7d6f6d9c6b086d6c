package permuta_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Permuta-api/internal/application/dto"
	"github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/memory"
)

var errActivityDown = errors.New("activities: tabla no disponible")

// failingActivities simula un fallo al registrar la actividad.
type failingActivities struct{}

func (failingActivities) List(context.Context, int) ([]*entity.Activity, error) { return nil, nil }
func (failingActivities) Create(context.Context, *entity.Activity) error        { return errActivityDown }

// activityFailureTx envuelve el TxRunner real y sustituye el repositorio de actividades.
type activityFailureTx struct {
	inner repository.TxRunner
}

func (f activityFailureTx) Run(ctx context.Context, fn func(repository.TxRepos) error) error {
	return f.inner.Run(ctx, func(repos repository.TxRepos) error {
		repos.Activities = failingActivities{}
		return fn(repos)
	})
}

type stubReceipts struct{}

func (stubReceipts) PermutaReceipt(context.Context, permuta.ReceiptData) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type fixture struct {
	repos   *memory.Repos
	session *entity.Session
	from    int64
	to      int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepos()
	_, err := repos.Users.Upsert(ctx, &entity.User{ID: "u-1"})
	require.NoError(t, err)
	from := &entity.Sector{Name: "Origen"}
	to := &entity.Sector{Name: "Destino"}
	require.NoError(t, repos.Sectors.Create(ctx, from))
	require.NoError(t, repos.Sectors.Create(ctx, to))
	return fixture{
		repos:   repos,
		session: entity.NewProviderSession(entity.ProviderClaims{Subject: "u-1"}),
		from:    from.ID,
		to:      to.ID,
	}
}

func (f fixture) useCase(tx repository.TxRunner) *permuta.UseCase {
	return permuta.NewUseCase(f.repos.Permutas, f.repos.Users, f.repos.Sectors, tx, stubReceipts{})
}

func (f fixture) request() dto.CreatePermutaRequest {
	return dto.CreatePermutaRequest{FromSectorID: f.from, ToSectorID: f.to}
}

func TestUpdateStatus_FalloDeActividadRevierteEstado(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	created, err := f.useCase(f.repos.Tx).Create(ctx, f.session, f.request())
	require.NoError(t, err)

	_, err = f.useCase(activityFailureTx{inner: f.repos.Tx}).
		UpdateStatus(ctx, f.session, created.ID, entity.PermutaCompleted)
	require.ErrorIs(t, err, errActivityDown)

	p, err := f.repos.Permutas.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PermutaPending, p.Status)
	assert.Nil(t, p.CompletedAt)

	acts, err := f.repos.Activities.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, acts, 1, "solo la actividad permuta_created")
}

func TestCreate_FalloDeActividadNoDejaPermuta(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.useCase(activityFailureTx{inner: f.repos.Tx}).Create(ctx, f.session, f.request())
	require.ErrorIs(t, err, errActivityDown)

	list, err := f.repos.Permutas.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateStatus_EstadoInvalido_NoTocaPersistencia(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.repos.Tx)
	created, err := uc.Create(ctx, f.session, f.request())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, f.session, created.ID, entity.PermutaStatus("archived"))

	require.ErrorIs(t, err, domain.ErrInvalidStatus)
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status)
}

func TestUpdateStatus_Inexistente_ErrNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.useCase(f.repos.Tx).UpdateStatus(context.Background(), f.session, 42, entity.PermutaApproved)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_SesionAdminRegistraActorNulo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.repos.Tx)
	created, err := uc.Create(ctx, f.session, f.request())
	require.NoError(t, err)

	admin := entity.NewAdminSession("admin-1", created.CreatedAt)
	_, err = uc.UpdateStatus(ctx, admin, created.ID, entity.PermutaRejected)
	require.NoError(t, err)

	acts, err := f.repos.Activities.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "permuta_rejected", acts[0].Type)
	assert.Nil(t, acts[0].UserID)
}

func TestList_StatusGanaSobreUsuario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.repos.Tx)
	_, err := uc.Create(ctx, f.session, f.request())
	require.NoError(t, err)

	approved := entity.PermutaApproved
	list, err := uc.List(ctx, entity.PermutaFilter{Status: &approved, UserID: "u-1"})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = uc.List(ctx, entity.PermutaFilter{UserID: "u-1"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReceipt_NombreDeArchivo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.repos.Tx)
	created, err := uc.Create(ctx, f.session, f.request())
	require.NoError(t, err)

	pdf, name, err := uc.Receipt(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(pdf))
	assert.Equal(t, "permuta-1.pdf", name)

	_, _, err = uc.Receipt(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
