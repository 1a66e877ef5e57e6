package handlers

import (
	"yatube/internal/config"
	"yatube/internal/logger"
	"yatube/internal/service"
)

type Handlers struct {
	FeedService   service.FeedService
	PostService   service.PostService
	FollowService service.FollowService
	GroupService  service.GroupService
	AuthService   service.AuthService
	HealthService service.HealthService
	Cfg           *config.Config
	Log           *logger.Logger
}

func NewHandlers(services *service.Service, cfg *config.Config, log *logger.Logger) *Handlers {
	return &Handlers{
		FeedService:   services.Feed,
		PostService:   services.Post,
		FollowService: services.Follow,
		GroupService:  services.Group,
		AuthService:   services.Auth,
		HealthService: services.Health,
		Cfg:           cfg,
		Log:           log,
	}
}
