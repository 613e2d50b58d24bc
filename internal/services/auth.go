package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/echoroom/echoroom-backend/internal/logger"
	"github.com/echoroom/echoroom-backend/internal/normalization"
	"github.com/echoroom/echoroom-backend/internal/repos"
	"github.com/echoroom/echoroom-backend/internal/requestdata"
	"github.com/echoroom/echoroom-backend/internal/types"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, email, username, password string) (*types.User, *TokenPair, error)
	LoginUser(ctx context.Context, email, password string) (*types.User, *TokenPair, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, error)
	LogoutUser(ctx context.Context, refreshToken string) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, email, username, password string) (*types.User, *TokenPair, error) {
	email = normalization.ParseInputString(email)
	username = normalization.TrimInputString(username)
	if email == "" || username == "" {
		return nil, nil, fmt.Errorf("email and username are required")
	}
	if len(password) < 8 {
		return nil, nil, fmt.Errorf("password must be at least 8 characters")
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if emailExists {
		return nil, nil, fmt.Errorf("email is already in use")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password")
	}

	user := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
		Role:     "member",
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := as.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		p, pErr := as.issueTokenPair(ctx, tx, user)
		if pErr != nil {
			return pErr
		}
		pair = p
		return nil
	}); err != nil {
		return nil, nil, err
	}

	as.log.Info("User registered", "user_id", user.ID, "email", email)
	return user, pair, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, *TokenPair, error) {
	email = normalization.ParseInputString(email)
	if email == "" || password == "" {
		return nil, nil, fmt.Errorf("email and password are required")
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, nil, fmt.Errorf("invalid email or password")
	}
	user := users[0]

	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return nil, nil, fmt.Errorf("invalid email or password")
	}

	var pair *TokenPair
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, pErr := as.issueTokenPair(ctx, tx, user)
		if pErr != nil {
			return pErr
		}
		pair = p
		return nil
	}); err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, error) {
	stored, err := as.userTokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return "", fmt.Errorf("invalid refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		_ = as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
		return "", fmt.Errorf("refresh token expired")
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{stored.UserID})
	if err != nil || len(users) == 0 {
		return "", fmt.Errorf("user for refresh token no longer exists")
	}
	return as.generateAccessToken(users[0])
}

func (as *authService) LogoutUser(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return as.userTokenRepo.DeleteByRefreshToken(ctx, nil, refreshToken)
}

// SetContextFromToken validates the access token and stashes the caller's
// identity as request data on the context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid subject claim")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Username:    username,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) issueTokenPair(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{userToken}); err != nil {
		as.log.Warn("Create user token error", "error", err)
		return nil, fmt.Errorf("create user token: %w", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}
