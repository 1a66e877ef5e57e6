package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postRow is a post joined with its author and (optional) group.
type postRow struct {
	models.Post
	AuthorUsername   string         `db:"author_username"`
	AuthorFirstName  string         `db:"author_first_name"`
	AuthorLastName   string         `db:"author_last_name"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

func (row postRow) toModel() models.Post {
	post := row.Post
	post.Author = models.Author{
		UserID:    post.AuthorID,
		Username:  row.AuthorUsername,
		FirstName: row.AuthorFirstName,
		LastName:  row.AuthorLastName,
	}
	if post.GroupID != nil && row.GroupSlug.Valid {
		post.Group = &models.Group{
			GroupID:     *post.GroupID,
			Title:       row.GroupTitle.String,
			Slug:        row.GroupSlug.String,
			Description: row.GroupDescription.String,
		}
	}
	return post
}

const selectPostsWithRelations = `
	SELECT p.post_id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
		u.username AS author_username, u.first_name AS author_first_name, u.last_name AS author_last_name,
		g.title AS group_title, g.slug AS group_slug, g.description AS group_description
	FROM posts p
	JOIN users u ON u.user_id = p.author_id
	LEFT JOIN groups g ON g.group_id = p.group_id`

// where renders the filter as a WHERE clause with positional args.
func (f PostFilter) where() (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.GroupID != "" {
		args = append(args, f.GroupID)
		conds = append(conds, fmt.Sprintf("p.group_id = $%d", len(args)))
	}
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if f.FollowerID != "" {
		args = append(args, f.FollowerID)
		conds = append(conds, fmt.Sprintf("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.user_id = $%d)", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts (post_id, text, pub_date, author_id, group_id, image)
        VALUES (:post_id, :text, :pub_date, :author_id, :group_id, :image)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.PubDate.IsZero() {
		post.PubDate = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	var row postRow
	err := r.db.GetContext(ctx, &row, selectPostsWithRelations+` WHERE p.post_id = $1`, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	post := row.toModel()
	return &post, nil
}

// ListPosts returns one page of posts matching filter, newest first, each
// with its author and group attached.
func (r *postRepository) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	where, args := filter.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY p.pub_date DESC, p.post_id DESC LIMIT $%d OFFSET $%d",
		selectPostsWithRelations, where, len(args)-1, len(args))

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts, nil
}

func (r *postRepository) CountPosts(ctx context.Context, filter PostFilter) (int, error) {
	where, args := filter.where()

	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts p"+where, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}
	return count, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	return r.CountPosts(ctx, PostFilter{AuthorID: authorID})
}

// Update changes the editable fields of a post. pub_date and author never change.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = :text,
			group_id = :group_id,
			image = :image
		WHERE post_id = :post_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// Delete removes the post; its comments go with it through ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, postID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
	}

	return nil
}

// ListImagesByAuthor returns the object names of every image attached to the
// author's posts.
func (r *postRepository) ListImagesByAuthor(ctx context.Context, authorID string) ([]string, error) {
	images := []string{}
	err := r.db.SelectContext(ctx, &images,
		`SELECT image FROM posts WHERE author_id = $1 AND image <> '' ORDER BY pub_date`, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении изображений автора: %w", err)
	}
	return images, nil
}
