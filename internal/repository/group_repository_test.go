package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/models"
)

func TestGroupRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectExec(`INSERT INTO groups`).
		WithArgs(sqlmock.AnyArg(), "Коты", "cats", "Про котов").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO groups`).
		WillReturnError(&pq.Error{Code: "23505"})

	group := &models.Group{Title: "Коты", Slug: "cats", Description: "Про котов"}
	require.NoError(t, repo.Create(context.Background(), group))
	assert.NotEmpty(t, group.GroupID)

	err := repo.Create(context.Background(), &models.Group{Title: "Коты", Slug: "cats"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestGroupRepository_GetBySlug(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM groups WHERE slug = $1")).
		WithArgs("cats").
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "title", "slug", "description"}).
			AddRow("g-1", "Коты", "cats", "Про котов"))

	group, err := repo.GetBySlug(context.Background(), "cats")

	require.NoError(t, err)
	assert.Equal(t, "g-1", group.GroupID)
}

func TestGroupRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGroupRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM groups WHERE slug = $1")).
		WithArgs("dogs").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "dogs"), ErrNotFound)
}
