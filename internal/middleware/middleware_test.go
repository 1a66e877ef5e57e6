package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"yatube/internal/logger"
	"yatube/internal/service"
)

type fakeTokens map[string]service.CurrentUser

func (f fakeTokens) GetUserFromToken(token string) (service.CurrentUser, error) {
	user, ok := f[token]
	if !ok {
		return service.CurrentUser{}, errors.New("недействительный токен")
	}
	return user, nil
}

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := service.CurrentUserFromContext(r.Context())
		if !ok {
			w.Write([]byte("anonymous"))
			return
		}
		w.Write([]byte(user.Username))
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := fakeTokens{"good": {UserID: "u-1", Username: "leo"}}

	tests := []struct {
		name     string
		header   string
		cookie   string
		expected string
	}{
		{name: "Без токена", expected: "anonymous"},
		{name: "Токен в заголовке", header: "Bearer good", expected: "leo"},
		{name: "Токен в cookie", cookie: "good", expected: "leo"},
		{name: "Неверный формат заголовка", header: "Token good", expected: "anonymous"},
		{name: "Недействительный токен", cookie: "bad", expected: "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()

			Authenticate(tokens)(whoAmI()).ServeHTTP(rr, req)

			assert.Equal(t, tt.expected, rr.Body.String())
		})
	}
}

func TestLoginRequired(t *testing.T) {
	t.Run("Аноним перенаправляется на вход", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/create/", nil)
		rr := httptest.NewRecorder()

		LoginRequired(whoAmI()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", rr.Header().Get("Location"))
	})

	t.Run("Строка запроса сохраняется в next", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/follow/?page=2", nil)
		rr := httptest.NewRecorder()

		LoginRequired(whoAmI()).ServeHTTP(rr, req)

		assert.Equal(t, "/auth/login/?next=%2Ffollow%2F%3Fpage%3D2", rr.Header().Get("Location"))
	})

	t.Run("Пользователь проходит", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/create/", nil)
		req = req.WithContext(service.WithCurrentUser(req.Context(), service.CurrentUser{UserID: "u-1", Username: "leo"}))
		rr := httptest.NewRecorder()

		LoginRequired(whoAmI()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "leo", rr.Body.String())
	})
}

func TestRequestIDAndLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "info")

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	}), RequestID, Logging(log))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/about/tech/", nil))

	id := rr.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), id)
}

func TestRequestID_ReusesClientID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-id")
	rr := httptest.NewRecorder()

	RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

	assert.Equal(t, "client-id", rr.Header().Get(HeaderRequestID))
}

func TestRecover(t *testing.T) {
	rr := httptest.NewRecorder()

	Recover(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Внутренняя ошибка сервера")
}

func TestCORS_Preflight(t *testing.T) {
	rr := httptest.NewRecorder()
	called := false

	CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })).
		ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.False(t, called)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mark("a"), mark("b")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b"}, order)
}
