package service

import (
	"context"

	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type UserService interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	storage  storage.Storage
	log      *logger.Logger
}

func NewUserService(rep *repository.Repository, storage storage.Storage, log *logger.Logger) UserService {
	return &userService{
		userRepo: rep.User,
		postRepo: rep.Post,
		storage:  storage,
		log:      log,
	}
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

// DeleteUser removes the account together with its posts, comments and
// follow edges. Images of the removed posts are deleted from storage after
// the rows are gone; storage failures are only logged.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	images, err := s.postRepo.ListImagesByAuthor(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	for _, image := range images {
		if err := s.storage.DeleteImage(ctx, image); err != nil {
			s.log.Warn("users", "failed to delete image", err, "object", image)
		}
	}
	return nil
}
