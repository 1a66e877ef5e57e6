package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"yatube/internal/config"
	"yatube/internal/models"
	"yatube/internal/repository"
)

type SignupForm struct {
	Username  string `form:"username" validate:"required,max=150,slug"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Password  string `form:"password" validate:"required,min=6"`
	FirstName string `form:"first_name" validate:"max=150"`
	LastName  string `form:"last_name" validate:"max=150"`
}

type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type AuthService interface {
	Register(ctx context.Context, form SignupForm) (*models.User, error)
	Login(ctx context.Context, form LoginForm) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	GetUserFromToken(tokenString string) (CurrentUser, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	validate *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, validate *validator.Validate) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		validate: validate,
	}
}

func (s *authService) Register(ctx context.Context, form SignupForm) (*models.User, error) {
	if err := validateForm(s.validate, form); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByUsername(ctx, form.Username); err == nil {
		return nil, &ValidationError{Fields: map[string]string{
			"username": "Пользователь с таким именем уже существует.",
		}}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, form.Email); err == nil {
		return nil, &ValidationError{Fields: map[string]string{
			"email": "Пользователь с таким email уже существует.",
		}}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Username:               form.Username,
		Email:                  form.Email,
		FirstName:              form.FirstName,
		LastName:               form.LastName,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	err := s.userRepo.CreateUser(ctx, user, form.Password)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil, &ValidationError{Fields: map[string]string{
			"username": "Пользователь с таким именем уже существует.",
		}}
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, form LoginForm) (*models.User, string, string, error) {
	if err := validateForm(s.validate, form); err != nil {
		return nil, "", "", err
	}

	user, err := s.userRepo.VerifyPassword(ctx, form.Username, form.Password)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: %v", ErrInvalidCreds, err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("недействительный refresh token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId":   user.UserID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("недействительный токен")
	}

	return token, nil
}

func (s *authService) GetUserFromToken(tokenString string) (CurrentUser, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return CurrentUser{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return CurrentUser{}, errors.New("неверный формат claims")
	}

	userID, ok1 := claims["userId"].(string)
	username, ok2 := claims["username"].(string)
	if !ok1 || !ok2 || userID == "" {
		return CurrentUser{}, errors.New("неверные данные в токене")
	}

	return CurrentUser{UserID: userID, Username: username}, nil
}
