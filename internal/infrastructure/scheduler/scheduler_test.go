package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Permuta-api/pkg/logger"
)

type fakeExpirer struct {
	calls int
	err   error
}

func (f *fakeExpirer) ExpireAccounts(context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

func TestAddAccountExpiry_ExpresionInvalida(t *testing.T) {
	s := New(logger.Nop())
	err := s.AddAccountExpiry("cada hora", &fakeExpirer{})
	assert.Error(t, err)
}

func TestAddAccountExpiry_ExpresionValida(t *testing.T) {
	s := New(logger.Nop())
	assert.NoError(t, s.AddAccountExpiry("@hourly", &fakeExpirer{}))
	assert.NoError(t, s.AddAccountExpiry("*/15 * * * *", &fakeExpirer{}))
}

func TestRunAccountExpiry_ErrorNoEntraEnPanico(t *testing.T) {
	s := New(logger.Nop())
	f := &fakeExpirer{err: errors.New("db caída")}
	assert.NotPanics(t, func() { s.runAccountExpiry(f) })
	assert.Equal(t, 1, f.calls)
}
