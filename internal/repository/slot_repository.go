package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (datetime_utc, available)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, slot.DatetimeUTC, slot.Available).
		Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT id, datetime_utc, available, created_at
		FROM slots
		WHERE id = $1
	`

	var slot model.Slot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.DatetimeUTC,
		&slot.Available,
		&slot.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// GetAvailableFrom получает доступные слоты начиная с указанного времени
func (r *SlotRepository) GetAvailableFrom(ctx context.Context, from time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, datetime_utc, available, created_at
		FROM slots
		WHERE available = TRUE
		  AND datetime_utc >= $1
		ORDER BY datetime_utc
	`

	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("get available slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.DatetimeUTC,
			&slot.Available,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}

// Reserve помечает слот занятым. Условный UPDATE закрывает гонку двух
// одновременных заявок: из двух конкурентов строку изменит только один,
// второй получит ErrSlotUnavailable.
func (r *SlotRepository) Reserve(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET available = FALSE
		WHERE id = $1 AND available = TRUE
	`

	result, err := r.pool.Exec(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrSlotUnavailable
	}

	return nil
}

// Release возвращает слот в доступные (после отклонения заявки)
func (r *SlotRepository) Release(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET available = TRUE
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("release slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("release slot: %w", model.ErrNotFound)
	}

	return nil
}

// CountAvailableFrom считает доступные будущие слоты (для метрик)
func (r *SlotRepository) CountAvailableFrom(ctx context.Context, from time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM slots
		WHERE available = TRUE
		  AND datetime_utc >= $1
	`

	var count int64
	if err := r.pool.QueryRow(ctx, query, from).Scan(&count); err != nil {
		return 0, fmt.Errorf("count available slots: %w", err)
	}

	return count, nil
}
