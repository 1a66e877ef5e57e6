package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the (userID, authorID) edge if it is absent and returns the
// stored edge. created is true only when this call inserted the row.
// Concurrent calls for the same pair converge on one row through the
// follows_unique_pair constraint.
func (r *followRepository) Create(ctx context.Context, userID, authorID string) (*models.Follow, bool, error) {
	query := `
		INSERT INTO follows (follow_id, user_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, uuid.New().String(), userID, authorID, time.Now())
	if err != nil {
		if pqCode(err) == checkViolation {
			return nil, false, ErrSelfFollow
		}
		return nil, false, fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("ошибка при проверке вставленных строк: %w", err)
	}

	follow, err := r.Get(ctx, userID, authorID)
	if err != nil {
		return nil, false, err
	}
	return follow, rowsAffected == 1, nil
}

func (r *followRepository) Get(ctx context.Context, userID, authorID string) (*models.Follow, error) {
	var follow models.Follow

	err := r.db.GetContext(ctx, &follow,
		`SELECT * FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("подписка: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении подписки: %w", err)
	}

	return &follow, nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND author_id = $2`, userID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("подписка: %w", ErrNotFound)
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var exists bool

	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)`, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return exists, nil
}

// ListAuthors returns the users that userID follows, ordered by username.
func (r *followRepository) ListAuthors(ctx context.Context, userID string) ([]models.User, error) {
	query := `
		SELECT u.* FROM users u
		JOIN follows f ON f.author_id = u.user_id
		WHERE f.user_id = $1
		ORDER BY u.username
	`

	authors := []models.User{}
	if err := r.db.SelectContext(ctx, &authors, query, userID); err != nil {
		return nil, fmt.Errorf("ошибка при получении подписок: %w", err)
	}

	return authors, nil
}
