package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Sectors    SectorRepository
	Permutas   PermutaRepository
	Activities ActivityRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn retorna nil,
// rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
