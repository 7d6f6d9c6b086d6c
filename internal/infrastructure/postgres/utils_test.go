package postgres

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Permuta-api/internal/domain"
	"github.com/jhoicas/Permuta-api/internal/domain/entity"
)

func TestTranslateWriteError_Unique(t *testing.T) {
	err := translateWriteError("users: upsert", &pgconn.PgError{Code: codeUniqueViolation}, domain.ErrInvalidReference)

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "users: upsert")
}

func TestTranslateWriteError_ForeignKeySegunOperacion(t *testing.T) {
	fk := fmt.Errorf("envuelto: %w", &pgconn.PgError{Code: codeForeignKeyViolation})

	assert.ErrorIs(t, translateWriteError("permutas: crear", fk, domain.ErrInvalidReference), domain.ErrInvalidReference)
	assert.ErrorIs(t, translateWriteError("sectors: borrar", fk, domain.ErrReferenced), domain.ErrReferenced)
}

func TestTranslateWriteError_OtrosSeConservan(t *testing.T) {
	base := errors.New("conexión cerrada")

	err := translateWriteError("sectors: crear", base, domain.ErrInvalidReference)

	assert.ErrorIs(t, err, base)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-3))
	assert.Equal(t, 5, limitArg(5))
}

func TestMigrations_OrdenYContenido(t *testing.T) {
	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version, "versiones consecutivas desde 1")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, strings.TrimSpace(m.SQL))
	}
}

// El enum de la base debe coincidir con el dominio cerrado de estados.
func TestMigrations_EnumDeEstados(t *testing.T) {
	for _, st := range entity.PermutaStatuses {
		assert.Contains(t, schemaV1, fmt.Sprintf("'%s'", st))
	}
}
