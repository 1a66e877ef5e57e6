package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"yatube/internal/cache"
	"yatube/internal/config"
	handlers "yatube/internal/handler"
	"yatube/internal/logger"
	"yatube/internal/service"
)

const (
	leoToken   = "token-leo"
	annaToken  = "token-anna"
	leoID      = "user-leo"
	annaID     = "user-anna"
	testPostID = "3f1c1d3a-1a2b-4c5d-8e9f-0a1b2c3d4e5f"
)

type testEnv struct {
	feed    *MockFeedService
	posts   *MockPostService
	follows *MockFollowService
	groups  *MockGroupService
	auth    *MockAuthService
	health  *MockHealthService
	cache   *cache.PageCache
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithTTL(t, 20*time.Second)
}

func newTestEnvWithTTL(t *testing.T, ttl time.Duration) *testEnv {
	env := &testEnv{
		feed:    new(MockFeedService),
		posts:   new(MockPostService),
		follows: new(MockFollowService),
		groups:  new(MockGroupService),
		auth:    new(MockAuthService),
		health:  new(MockHealthService),
		cache:   cache.NewPageCache(ttl, logger.Discard()),
	}

	env.auth.On("GetUserFromToken", leoToken).Return(service.CurrentUser{UserID: leoID, Username: "leo"}, nil).Maybe()
	env.auth.On("GetUserFromToken", annaToken).Return(service.CurrentUser{UserID: annaID, Username: "anna"}, nil).Maybe()
	env.auth.On("GetUserFromToken", mock.Anything).Return(service.CurrentUser{}, errors.New("недействительный токен")).Maybe()

	h := &handlers.Handlers{
		FeedService:   env.feed,
		PostService:   env.posts,
		FollowService: env.follows,
		GroupService:  env.groups,
		AuthService:   env.auth,
		HealthService: env.health,
		Cfg: &config.Config{
			MaxUploadSize:       1 << 20,
			AccessTokenDuration: time.Hour,
			PostsPerPage:        10,
		},
		Log: logger.Discard(),
	}
	env.router = handlers.NewRouter(h, env.cache)

	t.Cleanup(func() {
		env.feed.AssertExpectations(t)
		env.posts.AssertExpectations(t)
		env.follows.AssertExpectations(t)
		env.groups.AssertExpectations(t)
		env.health.AssertExpectations(t)
	})
	return env
}

// do sends a request through the full router. token may be empty.
func (env *testEnv) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) get(target, token string) *httptest.ResponseRecorder {
	return env.do(http.MethodGet, target, token, nil, "")
}

func (env *testEnv) postForm(target, token, form string) *httptest.ResponseRecorder {
	return env.do(http.MethodPost, target, token, strings.NewReader(form), "application/x-www-form-urlencoded")
}
