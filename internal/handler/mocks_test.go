package handlers_test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"yatube/internal/models"
	"yatube/internal/service"
)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) feed(args mock.Arguments) (*service.FeedPage, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FeedPage), args.Error(1)
}

func (m *MockFeedService) Index(ctx context.Context, rawPage string) (*service.FeedPage, error) {
	return m.feed(m.Called(ctx, rawPage))
}

func (m *MockFeedService) GroupFeed(ctx context.Context, slug, rawPage string) (*service.GroupFeed, error) {
	args := m.Called(ctx, slug, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GroupFeed), args.Error(1)
}

func (m *MockFeedService) Profile(ctx context.Context, username, viewerID, rawPage string) (*service.ProfileFeed, error) {
	args := m.Called(ctx, username, viewerID, rawPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProfileFeed), args.Error(1)
}

func (m *MockFeedService) FollowFeed(ctx context.Context, userID, rawPage string) (*service.FeedPage, error) {
	return m.feed(m.Called(ctx, userID, rawPage))
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, authorID string, form service.PostForm) (*models.Post, error) {
	args := m.Called(ctx, authorID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, editorID, postID string, form service.PostForm) (*models.Post, error) {
	args := m.Called(ctx, editorID, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, editorID, postID string) error {
	args := m.Called(ctx, editorID, postID)
	return args.Error(0)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) PostDetail(ctx context.Context, postID string) (*service.PostDetail, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PostDetail), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, authorID, postID string, form service.CommentForm) (*models.Comment, error) {
	args := m.Called(ctx, authorID, postID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, userID, authorUsername string) (*models.Follow, error) {
	args := m.Called(ctx, userID, authorUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Follow), args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, userID, authorUsername string) error {
	args := m.Called(ctx, userID, authorUsername)
	return args.Error(0)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) ListFollowing(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, form service.GroupForm) (*models.Group, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockGroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, form service.SignupForm) (*models.User, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, form service.LoginForm) (*models.User, string, string, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) GetUserFromToken(tokenString string) (service.CurrentUser, error) {
	args := m.Called(tokenString)
	return args.Get(0).(service.CurrentUser), args.Error(1)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
