package service

import "context"

type contextKey string

const currentUserKey = contextKey("current_user")

// CurrentUser is the authenticated caller of a request.
type CurrentUser struct {
	UserID   string
	Username string
}

func WithCurrentUser(ctx context.Context, user CurrentUser) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUserFromContext returns the caller, if the request was authenticated.
func CurrentUserFromContext(ctx context.Context) (CurrentUser, bool) {
	user, ok := ctx.Value(currentUserKey).(CurrentUser)
	return user, ok && user.UserID != ""
}
