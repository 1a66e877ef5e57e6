package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (comment_id, post_id, author_id, text, created)
		VALUES (:comment_id, :post_id, :author_id, :text, :created)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.Created.IsZero() {
		comment.Created = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("ошибка при создании комментария: %w", err)
	}

	return nil
}

type commentRow struct {
	models.Comment
	AuthorUsername  string `db:"author_username"`
	AuthorFirstName string `db:"author_first_name"`
	AuthorLastName  string `db:"author_last_name"`
}

// ListByPost returns the comments of a post, newest first, with authors attached.
func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	query := `
		SELECT c.comment_id, c.post_id, c.author_id, c.text, c.created,
			u.username AS author_username, u.first_name AS author_first_name, u.last_name AS author_last_name
		FROM comments c
		JOIN users u ON u.user_id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created DESC
	`

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, postID); err != nil {
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}

	comments := make([]models.Comment, 0, len(rows))
	for _, row := range rows {
		comment := row.Comment
		comment.Author = models.Author{
			UserID:    comment.AuthorID,
			Username:  row.AuthorUsername,
			FirstName: row.AuthorFirstName,
			LastName:  row.AuthorLastName,
		}
		comments = append(comments, comment)
	}
	return comments, nil
}
