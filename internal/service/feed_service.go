package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/paginator"
	"yatube/internal/repository"
	"yatube/internal/storage"
)

// FeedPage is one page of a post feed.
type FeedPage struct {
	Posts []models.Post   `json:"posts"`
	Page  paginator.Page `json:"page"`
}

type GroupFeed struct {
	Group *models.Group `json:"group"`
	FeedPage
}

type ProfileFeed struct {
	Author    models.Author `json:"author"`
	PostCount int           `json:"postCount"`
	Following bool          `json:"following"`
	CanFollow bool          `json:"canFollow"`
	FeedPage
}

type FeedService interface {
	Index(ctx context.Context, rawPage string) (*FeedPage, error)
	GroupFeed(ctx context.Context, slug, rawPage string) (*GroupFeed, error)
	Profile(ctx context.Context, username, viewerID, rawPage string) (*ProfileFeed, error)
	FollowFeed(ctx context.Context, userID, rawPage string) (*FeedPage, error)
}

type feedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	storage    storage.Storage
	perPage    int
}

func NewFeedService(rep *repository.Repository, storage storage.Storage, perPage int) FeedService {
	return &feedService{
		postRepo:   rep.Post,
		groupRepo:  rep.Group,
		userRepo:   rep.User,
		followRepo: rep.Follow,
		storage:    storage,
		perPage:    perPage,
	}
}

// page counts the filtered posts first so an out-of-range page number can be
// clamped before the slice is fetched.
func (s *feedService) page(ctx context.Context, filter repository.PostFilter, rawPage string) (*FeedPage, error) {
	count, err := s.postRepo.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := paginator.New(count, s.perPage).GetPage(rawPage)
	posts := []models.Post{}
	if page.Limit() > 0 {
		posts, err = s.postRepo.ListPosts(ctx, filter, page.Limit(), page.Offset())
		if err != nil {
			return nil, err
		}
	}

	for i := range posts {
		posts[i].ImageURL = s.storage.ImageURL(posts[i].Image)
	}

	return &FeedPage{Posts: posts, Page: page}, nil
}

func (s *feedService) Index(ctx context.Context, rawPage string) (*FeedPage, error) {
	return s.page(ctx, repository.PostFilter{}, rawPage)
}

func (s *feedService) GroupFeed(ctx context.Context, slug, rawPage string) (*GroupFeed, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	feed, err := s.page(ctx, repository.PostFilter{GroupID: group.GroupID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, FeedPage: *feed}, nil
}

// Profile shows an author's posts. viewerID is empty for anonymous visitors.
func (s *feedService) Profile(ctx context.Context, username, viewerID, rawPage string) (*ProfileFeed, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	feed, err := s.page(ctx, repository.PostFilter{AuthorID: author.UserID}, rawPage)
	if err != nil {
		return nil, err
	}

	profile := &ProfileFeed{
		Author:    author.Author(),
		PostCount: feed.Page.Count,
		CanFollow: viewerID != "" && viewerID != author.UserID,
		FeedPage:  *feed,
	}
	if profile.CanFollow {
		profile.Following, err = s.followRepo.Exists(ctx, viewerID, author.UserID)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *feedService) FollowFeed(ctx context.Context, userID, rawPage string) (*FeedPage, error) {
	return s.page(ctx, repository.PostFilter{FollowerID: userID}, rawPage)
}
