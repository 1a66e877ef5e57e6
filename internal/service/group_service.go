package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"yatube/internal/models"
	"yatube/internal/repository"
)

type GroupForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" validate:"required"`
}

type GroupService interface {
	CreateGroup(ctx context.Context, form GroupForm) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	DeleteGroup(ctx context.Context, slug string) error
}

type groupService struct {
	groupRepo repository.GroupRepository
	validate  *validator.Validate
}

func NewGroupService(groupRepo repository.GroupRepository, validate *validator.Validate) GroupService {
	return &groupService{groupRepo: groupRepo, validate: validate}
}

func (s *groupService) CreateGroup(ctx context.Context, form GroupForm) (*models.Group, error) {
	form.Title = strings.TrimSpace(form.Title)
	form.Slug = strings.TrimSpace(form.Slug)
	form.Description = strings.TrimSpace(form.Description)

	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}

	err := s.groupRepo.Create(ctx, group)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, &ValidationError{Fields: map[string]string{
			"slug": "Группа с таким slug уже существует.",
		}}
	}
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.groupRepo.GetBySlug(ctx, slug)
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

// DeleteGroup removes the group; its posts are kept without a group.
func (s *groupService) DeleteGroup(ctx context.Context, slug string) error {
	return s.groupRepo.Delete(ctx, slug)
}
