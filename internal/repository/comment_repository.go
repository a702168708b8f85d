package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-app/lending-service/internal/domain"
)

// CommentRepository encapsulates comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]domain.Comment, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (text, item_id, author_id, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		comment.Text,
		comment.ItemID,
		comment.AuthorID,
		comment.CreatedAt,
	).Scan(&comment.ID)
}

func (r *commentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	const query = `
        SELECT id, text, item_id, author_id, created_at
        FROM comments WHERE item_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (r *commentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]domain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, text, item_id, author_id, created_at
        FROM comments WHERE item_id = ANY($1)
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func scanComments(rows pgx.Rows) ([]domain.Comment, error) {
	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.ItemID,
			&comment.AuthorID,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
