package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Freeeeeet/booking_bot/internal/model"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Upsert создаёт пользователя или возвращает существующего.
// Ключ сопоставления — telegram_id (уникальный индекс). Контактные данные
// существующего пользователя при повторной заявке не перезаписываются:
// DO UPDATE затрагивает только сам ключ и нужен, чтобы RETURNING отдал строку.
func (r *UserRepository) Upsert(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, name, email, phone, motive)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = excluded.telegram_id
		RETURNING id, telegram_id, name, email, phone, motive, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Name,
		user.Email,
		user.Phone,
		user.Motive,
	).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Motive,
		&user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, name, email, phone, motive, created_at
		FROM users
		WHERE telegram_id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Motive,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return &user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, telegram_id, name, email, phone, motive, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Motive,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}
