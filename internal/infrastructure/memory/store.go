// Package memory implementa los puertos de persistencia en memoria.
//
// Reproduce las reglas de integridad del esquema PostgreSQL (llaves foráneas,
// únicos, ON DELETE SET NULL del feed de actividad) para que la API se comporte
// igual con STORAGE_DRIVER=memory y en los tests. Nada persiste entre reinicios.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Permuta-api/internal/domain/entity"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
)

type state struct {
	users      map[string]entity.User
	sectors    map[int64]entity.Sector
	permutas   map[int64]entity.Permuta
	messages   map[int64]entity.Message
	activities map[int64]entity.Activity
	creds      map[string]entity.AdminCredential

	sectorSeq, permutaSeq, messageSeq, activitySeq int64
}

func newState() state {
	return state{
		users:      map[string]entity.User{},
		sectors:    map[int64]entity.Sector{},
		permutas:   map[int64]entity.Permuta{},
		messages:   map[int64]entity.Message{},
		activities: map[int64]entity.Activity{},
		creds:      map[string]entity.AdminCredential{},
	}
}

func (s state) clone() state {
	c := s
	c.users = cloneMap(s.users)
	c.sectors = cloneMap(s.sectors)
	c.permutas = cloneMap(s.permutas)
	c.messages = cloneMap(s.messages)
	c.activities = cloneMap(s.activities)
	c.creds = cloneMap(s.creds)
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	data state
	now  func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// Repos agrupa los adaptadores en memoria sobre un mismo Store.
type Repos struct {
	Users       *UserRepo
	Sectors     *SectorRepo
	Permutas    *PermutaRepo
	Messages    *MessageRepo
	Activities  *ActivityRepo
	Dashboard   *DashboardRepo
	Credentials *AdminCredentialRepo
	Tx          *TxRunner
}

// NewRepos crea un Store nuevo y todos sus repositorios.
func NewRepos() *Repos {
	s := NewStore()
	return &Repos{
		Users:       &UserRepo{s: s},
		Sectors:     &SectorRepo{s: s},
		Permutas:    &PermutaRepo{s: s},
		Messages:    &MessageRepo{s: s},
		Activities:  &ActivityRepo{s: s},
		Dashboard:   &DashboardRepo{s: s},
		Credentials: &AdminCredentialRepo{s: s},
		Tx:          &TxRunner{s: s},
	}
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta cada transacción sobre una copia privada del estado y la
// publica solo si fn termina sin error. El Store queda bloqueado mientras
// tanto, así que las escrituras concurrentes esperan en vez de perderse.
// fn solo debe usar los repositorios que recibe.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn con repositorios ligados a la transacción; rollback si retorna error.
func (r *TxRunner) Run(_ context.Context, fn func(repos repository.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := &Store{data: r.s.data.clone(), now: r.s.now}
	err := fn(repository.TxRepos{
		Sectors:    &SectorRepo{s: tx},
		Permutas:   &PermutaRepo{s: tx},
		Activities: &ActivityRepo{s: tx},
	})
	if err != nil {
		return err
	}
	r.s.data = tx.data
	return nil
}

// newestFirst ordena por created_at DESC, id DESC y aplica el límite opcional.
func newestFirst[T any](items []T, key func(T) (time.Time, int64), limit int) []T {
	sort.Slice(items, func(i, j int) bool {
		ti, ii := key(items[i])
		tj, ij := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ii > ij
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
