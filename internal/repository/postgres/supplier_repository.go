package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/koncoweb/petnexus-sub000/internal/domain"
	"github.com/koncoweb/petnexus-sub000/internal/repository"
)

// SupplierRepository exposes supplier lookups.
type SupplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// GetSuppliers returns suppliers matching the optional search term with
// pagination.
func (r *SupplierRepository) GetSuppliers(ctx context.Context, search string, limit, offset int) ([]*domain.Supplier, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, COALESCE(contact_name, '') AS contact_name, COALESCE(phone, '') AS phone, created_at, updated_at
		FROM suppliers`
	args := []interface{}{}

	if s := strings.TrimSpace(search); s != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+s+"%")
	}
	query += fmt.Sprintf(`
		ORDER BY name
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	suppliers := []*domain.Supplier{}
	if err := r.db.SelectContext(ctx, &suppliers, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch suppliers: %w", err)
	}

	return suppliers, nil
}

// GetSupplier loads one supplier by id.
func (r *SupplierRepository) GetSupplier(ctx context.Context, id string) (*domain.Supplier, error) {
	supplier := &domain.Supplier{}
	err := r.db.GetContext(ctx, supplier, `
		SELECT id, name, COALESCE(contact_name, '') AS contact_name, COALESCE(phone, '') AS phone, created_at, updated_at
		FROM suppliers
		WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplier %s: %w", id, err)
	}

	return supplier, nil
}
