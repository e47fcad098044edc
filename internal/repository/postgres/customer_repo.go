package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sndbilling/internal/domain"
)

// CustomerRepo implements port.CustomerRepository on PostgreSQL.
type CustomerRepo struct {
	db *sqlx.DB
}

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `
		SELECT id, name, erpnext_id, created_at
		FROM customers
		WHERE id = $1`

	var customer domain.Customer
	if err := r.db.GetContext(ctx, &customer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &customer, nil
}
