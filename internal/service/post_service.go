package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"yatube/internal/broker"
	"yatube/internal/config"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

// ImageUpload is an image file received with a post form.
type ImageUpload struct {
	FileName string
	Data     []byte
}

type PostForm struct {
	Text  string       `form:"text" validate:"required"`
	Group string       `form:"group" validate:"omitempty,slug"`
	Image *ImageUpload `form:"image" validate:"-"`
}

type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// PostDetail is everything the post page shows.
type PostDetail struct {
	Post      *models.Post     `json:"post"`
	PostCount int              `json:"postCount"`
	Comments  []models.Comment `json:"comments"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID string, form PostForm) (*models.Post, error)
	UpdatePost(ctx context.Context, editorID, postID string, form PostForm) (*models.Post, error)
	DeletePost(ctx context.Context, editorID, postID string) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	PostDetail(ctx context.Context, postID string) (*PostDetail, error)
	AddComment(ctx context.Context, authorID, postID string, form CommentForm) (*models.Comment, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	publisher   broker.Publisher
	validate    *validator.Validate
	cfg         *config.Config
	log         *logger.Logger
}

func NewPostService(
	rep *repository.Repository,
	storage storage.Storage,
	publisher broker.Publisher,
	validate *validator.Validate,
	cfg *config.Config,
	log *logger.Logger,
) PostService {
	return &postService{
		postRepo:    rep.Post,
		groupRepo:   rep.Group,
		commentRepo: rep.Comment,
		storage:     storage,
		publisher:   publisher,
		validate:    validate,
		cfg:         cfg,
		log:         log,
	}
}

// cleanForm validates the form and resolves the optional group slug.
func (p *postService) cleanForm(ctx context.Context, form *PostForm) (*models.Group, string, error) {
	form.Text = strings.TrimSpace(form.Text)
	form.Group = strings.TrimSpace(form.Group)

	verr := &ValidationError{}
	if err := validateForm(p.validate, *form); err != nil {
		if !errors.As(err, &verr) {
			return nil, "", err
		}
	}

	var group *models.Group
	if form.Group != "" && verr.Fields["group"] == "" {
		g, err := p.groupRepo.GetBySlug(ctx, form.Group)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			verr.Add("group", "Выберите корректный вариант. Этой группы нет среди допустимых значений.")
		case err != nil:
			return nil, "", err
		default:
			group = g
		}
	}

	var contentType string
	if form.Image != nil {
		ct, msg := p.checkImage(form.Image)
		if msg != "" {
			verr.Add("image", msg)
		}
		contentType = ct
	}

	if !verr.Empty() {
		return nil, "", verr
	}
	return group, contentType, nil
}

func (p *postService) checkImage(img *ImageUpload) (string, string) {
	if len(img.Data) == 0 {
		return "", "Отправленный файл пуст."
	}
	if int64(len(img.Data)) > p.cfg.MaxUploadSize {
		return "", fmt.Sprintf("Файл слишком большой (%s), максимум %s.",
			humanize.Bytes(uint64(len(img.Data))), humanize.Bytes(uint64(p.cfg.MaxUploadSize)))
	}

	mtype := mimetype.Detect(img.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", "Загрузите правильное изображение. Файл, который вы загрузили, поврежден или не является изображением."
	}
	return mtype.String(), ""
}

func (p *postService) uploadImage(ctx context.Context, img *ImageUpload, contentType string) (string, error) {
	objectName, err := p.storage.UploadImage(ctx, img.FileName, contentType, bytes.NewReader(img.Data), int64(len(img.Data)))
	if err != nil {
		return "", fmt.Errorf("ошибка сохранения изображения: %w", err)
	}
	return objectName, nil
}

func (p *postService) CreatePost(ctx context.Context, authorID string, form PostForm) (*models.Post, error) {
	group, contentType, err := p.cleanForm(ctx, &form)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     form.Text,
		AuthorID: authorID,
		Group:    group,
	}
	if group != nil {
		post.GroupID = &group.GroupID
	}

	if form.Image != nil {
		post.Image, err = p.uploadImage(ctx, form.Image, contentType)
		if err != nil {
			return nil, err
		}
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if post.Image != "" {
			p.removeImage(ctx, post.Image)
		}
		return nil, err
	}
	post.ImageURL = p.storage.ImageURL(post.Image)

	p.log.Info("posts", "post created", "post_id", post.PostID, "author_id", authorID)
	publish(ctx, p.publisher, p.log, broker.Event{
		Type:     broker.PostCreated,
		ActorID:  authorID,
		AuthorID: authorID,
		PostID:   post.PostID,
	})

	return post, nil
}

// ownPost loads the post and checks that editorID wrote it.
func (p *postService) ownPost(ctx context.Context, editorID, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != editorID {
		return post, ErrForbidden
	}
	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, editorID, postID string, form PostForm) (*models.Post, error) {
	post, err := p.ownPost(ctx, editorID, postID)
	if err != nil {
		return nil, err
	}

	group, contentType, err := p.cleanForm(ctx, &form)
	if err != nil {
		return nil, err
	}

	post.Text = form.Text
	post.Group = group
	post.GroupID = nil
	if group != nil {
		post.GroupID = &group.GroupID
	}

	oldImage := post.Image
	if form.Image != nil {
		post.Image, err = p.uploadImage(ctx, form.Image, contentType)
		if err != nil {
			return nil, err
		}
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		if post.Image != oldImage {
			p.removeImage(ctx, post.Image)
		}
		return nil, err
	}
	if oldImage != "" && oldImage != post.Image {
		p.removeImage(ctx, oldImage)
	}
	post.ImageURL = p.storage.ImageURL(post.Image)

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, editorID, postID string) error {
	post, err := p.ownPost(ctx, editorID, postID)
	if err != nil {
		return err
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if post.Image != "" {
		p.removeImage(ctx, post.Image)
	}

	publish(ctx, p.publisher, p.log, broker.Event{
		Type:     broker.PostDeleted,
		ActorID:  editorID,
		AuthorID: post.AuthorID,
		PostID:   postID,
	})
	return nil
}

func (p *postService) removeImage(ctx context.Context, objectName string) {
	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		p.log.Warn("posts", "failed to delete image", err, "object", objectName)
	}
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	post.ImageURL = p.storage.ImageURL(post.Image)
	return post, nil
}

func (p *postService) PostDetail(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := p.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	count, err := p.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, PostCount: count, Comments: comments}, nil
}

func (p *postService) AddComment(ctx context.Context, authorID, postID string, form CommentForm) (*models.Comment, error) {
	if _, err := p.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	form.Text = strings.TrimSpace(form.Text)
	if err := validateForm(p.validate, form); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Text:     form.Text,
	}
	if err := p.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	publish(ctx, p.publisher, p.log, broker.Event{
		Type:      broker.CommentCreated,
		ActorID:   authorID,
		PostID:    postID,
		CommentID: comment.CommentID,
	})
	return comment, nil
}
