package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type groupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.GroupID == "" {
		group.GroupID = uuid.New().String()
	}

	query := `
		INSERT INTO groups (group_id, title, slug, description)
		VALUES (:group_id, :title, :slug, :description)
	`

	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		if pqCode(err) == uniqueViolation {
			return fmt.Errorf("группа %s: %w", group.Slug, ErrAlreadyExists)
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group

	err := r.db.GetContext(ctx, &group, `SELECT * FROM groups WHERE slug = $1`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}

	return &group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	groups := []models.Group{}

	if err := r.db.SelectContext(ctx, &groups, `SELECT * FROM groups ORDER BY title`); err != nil {
		return nil, fmt.Errorf("ошибка при получении групп: %w", err)
	}

	return groups, nil
}

// Delete removes the group. Its posts stay, with group_id set to NULL.
func (r *groupRepository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка при удалении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("группа %s: %w", slug, ErrNotFound)
	}

	return nil
}
