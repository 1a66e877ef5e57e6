package service

import (
	"context"

	"yatube/internal/broker"
	"yatube/internal/config"
	"yatube/internal/logger"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

type Service struct {
	User   UserService
	Auth   AuthService
	Group  GroupService
	Post   PostService
	Feed   FeedService
	Follow FollowService
	Health HealthService
}

func NewService(
	rep *repository.Repository,
	cfg *config.Config,
	storage storage.Storage,
	publisher broker.Publisher,
	log *logger.Logger,
) *Service {
	validate := NewValidator()

	return &Service{
		User:   NewUserService(rep, storage, log),
		Auth:   NewAuthService(rep.User, cfg, validate),
		Group:  NewGroupService(rep.Group, validate),
		Post:   NewPostService(rep, storage, publisher, validate, cfg, log),
		Feed:   NewFeedService(rep, storage, cfg.PostsPerPage),
		Follow: NewFollowService(rep, publisher, log),
		Health: NewHealthService(rep.Tables),
	}
}

// publish sends a domain event. Delivery failures are logged and otherwise
// ignored.
func publish(ctx context.Context, publisher broker.Publisher, log *logger.Logger, event broker.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warn("events", "failed to publish event", err, "type", string(event.Type))
	}
}
