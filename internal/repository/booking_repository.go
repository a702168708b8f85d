package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shareit-app/lending-service/internal/domain"
)

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Update(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64) ([]domain.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
        INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		booking.StartDate,
		booking.EndDate,
		booking.ItemID,
		booking.BookerID,
		booking.Status,
	).Scan(&booking.ID)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	const query = `
        UPDATE bookings SET start_date=$1, end_date=$2, status=$3
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query,
		booking.StartDate,
		booking.EndDate,
		booking.Status,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const query = `
        SELECT id, start_date, end_date, item_id, booker_id, status
        FROM bookings WHERE id=$1`

	var booking domain.Booking
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.StartDate,
		&booking.EndDate,
		&booking.ItemID,
		&booking.BookerID,
		&booking.Status,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByBooker(ctx context.Context, bookerID int64) ([]domain.Booking, error) {
	const query = `
        SELECT id, start_date, end_date, item_id, booker_id, status
        FROM bookings WHERE booker_id=$1
        ORDER BY start_date DESC`

	rows, err := r.pool.Query(ctx, query, bookerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListByItemOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	const query = `
        SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
        FROM bookings b
        JOIN items i ON i.id = b.item_id
        WHERE i.owner_id=$1
        ORDER BY b.start_date DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListApprovedByItems(ctx context.Context, itemIDs []int64) ([]domain.Booking, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, start_date, end_date, item_id, booker_id, status
        FROM bookings
        WHERE item_id = ANY($1) AND status='APPROVED'
        ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID,
			&booking.StartDate,
			&booking.EndDate,
			&booking.ItemID,
			&booking.BookerID,
			&booking.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
