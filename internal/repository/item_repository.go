package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-app/lending-service/internal/domain"
)

// ItemRepository encapsulates item persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
	Search(ctx context.Context, text string) ([]domain.Item, error)
}

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository instantiates repository.
func NewItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	const query = `
        INSERT INTO items (name, description, available, owner_id, request_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.OwnerID,
		item.RequestID,
	).Scan(&item.ID)
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	const query = `
        UPDATE items SET name=$1, description=$2, available=$3, request_id=$4
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	const query = `
        SELECT id, name, description, available, owner_id, request_id
        FROM items WHERE id=$1`

	var item domain.Item
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Available,
		&item.OwnerID,
		&item.RequestID,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, name, description, available, owner_id, request_id
        FROM items WHERE id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	const query = `
        SELECT id, name, description, available, owner_id, request_id
        FROM items WHERE owner_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *itemRepository) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, name, description, available, owner_id, request_id
        FROM items WHERE request_id = ANY($1) ORDER BY id`

	rows, err := r.pool.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *itemRepository) Search(ctx context.Context, text string) ([]domain.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.Item{}, nil
	}
	const query = `
        SELECT id, name, description, available, owner_id, request_id
        FROM items
        WHERE available = TRUE
          AND (LOWER(name) LIKE $1 OR LOWER(description) LIKE $1)
        ORDER BY id`

	pattern := "%" + strings.ToLower(text) + "%"
	rows, err := r.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var result []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Available,
			&item.OwnerID,
			&item.RequestID,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
