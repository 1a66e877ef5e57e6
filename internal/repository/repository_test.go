package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		sqlxDB.Close()
	})

	return sqlxDB, mock
}

var userColumns = []string{
	"user_id", "username", "email", "first_name", "last_name", "password_hash",
	"refresh_token", "refresh_token_expiry_time", "created_at",
}

var postColumns = []string{
	"post_id", "text", "pub_date", "author_id", "group_id", "image",
	"author_username", "author_first_name", "author_last_name",
	"group_title", "group_slug", "group_description",
}
