package service

import (
	"context"
	"errors"

	"yatube/internal/broker"
	"yatube/internal/logger"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID, authorUsername string) (*models.Follow, error)
	Unfollow(ctx context.Context, userID, authorUsername string) error
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.User, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	publisher  broker.Publisher
	log        *logger.Logger
}

func NewFollowService(rep *repository.Repository, publisher broker.Publisher, log *logger.Logger) FollowService {
	return &followService{
		followRepo: rep.Follow,
		userRepo:   rep.User,
		publisher:  publisher,
		log:        log,
	}
}

// Follow creates the edge if it does not exist yet and returns it. Following
// oneself is rejected with ErrSelfFollow. FollowCreated is published only for
// a newly inserted edge.
func (s *followService) Follow(ctx context.Context, userID, authorUsername string) (*models.Follow, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if author.UserID == userID {
		return nil, ErrSelfFollow
	}

	follow, created, err := s.followRepo.Create(ctx, userID, author.UserID)
	if err != nil {
		return nil, err
	}
	if !created {
		return follow, nil
	}

	publish(ctx, s.publisher, s.log, broker.Event{
		Type:     broker.FollowCreated,
		ActorID:  userID,
		AuthorID: author.UserID,
	})
	return follow, nil
}

// Unfollow removes the edge. Removing an edge that does not exist succeeds.
func (s *followService) Unfollow(ctx context.Context, userID, authorUsername string) error {
	author, err := s.userRepo.GetUserByUsername(ctx, authorUsername)
	if err != nil {
		return err
	}

	err = s.followRepo.Delete(ctx, userID, author.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	publish(ctx, s.publisher, s.log, broker.Event{
		Type:     broker.FollowRemoved,
		ActorID:  userID,
		AuthorID: author.UserID,
	})
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" || userID == authorID {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}

func (s *followService) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	return s.followRepo.ListAuthors(ctx, userID)
}
