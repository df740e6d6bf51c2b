package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Obra-api/internal/application/organization"
	"github.com/jhoicas/Obra-api/internal/domain/repository"
)

var _ organization.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta el alta de organizaciones dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBootstrap entrega a fn repos atados a una sola tx. Commit solo si fn devuelve nil;
// cualquier error (o ctx cancelado) deja la base como estaba.
func (r *TxRunner) RunBootstrap(ctx context.Context, fn func(
	orgRepo repository.OrganizationRepository,
	materialTypeRepo repository.MaterialTypeRepository,
	userRepo repository.UserRepository,
) error) error {
	var fnErr error
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		fnErr = fn(NewOrganizationRepository(tx), NewMaterialTypeRepository(tx), NewUserRepository(tx))
		return fnErr
	})
	switch {
	case fnErr != nil:
		return fnErr
	case err != nil:
		return fmt.Errorf("bootstrap transaction: %w", err)
	}
	return nil
}
