package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingJoinedColumns = `
	b.id, b.user_id, b.slot_id, b.motive, b.status, b.created_at, b.updated_at,
	u.id, u.telegram_id, u.name, u.email, u.phone, u.motive, u.created_at,
	s.id, s.datetime_utc, s.available, s.created_at
`

func scanJoinedBooking(row pgx.Row) (*model.Booking, error) {
	var (
		booking model.Booking
		user    model.User
		slot    model.Slot
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.SlotID,
		&booking.Motive,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Motive,
		&user.CreatedAt,
		&slot.ID,
		&slot.DatetimeUTC,
		&slot.Available,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.User = &user
	booking.Slot = &slot
	return &booking, nil
}

// Create создаёт новую заявку
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (user_id, slot_id, motive, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		booking.UserID,
		booking.SlotID,
		booking.Motive,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает заявку по ID вместе с пользователем и слотом
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT ` + bookingJoinedColumns + `
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN slots s ON s.id = b.slot_id
		WHERE b.id = $1
	`

	booking, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListUpcoming получает заявки, чей слот ещё не прошёл.
// Прошедшие заявки отфильтровываются на чтении, не удаляются.
func (r *BookingRepository) ListUpcoming(ctx context.Context, from time.Time) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingJoinedColumns + `
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN slots s ON s.id = b.slot_id
		WHERE s.datetime_utc >= $1
		ORDER BY s.datetime_utc
	`

	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanJoinedBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// UpdateStatusFromPending переводит заявку из pending в терминальный статус.
// Условие status = 'pending' защищает от повторного решения: для уже
// решённой заявки запрос не изменит ни одной строки и вернёт false.
func (r *BookingRepository) UpdateStatusFromPending(ctx context.Context, id int64, status model.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = 'pending'
	`

	result, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return false, fmt.Errorf("update booking status: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// CountPending считает заявки, ожидающие решения (для метрик)
func (r *BookingRepository) CountPending(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE status = 'pending'`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending bookings: %w", err)
	}

	return count, nil
}
