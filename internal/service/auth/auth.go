package auth

import (
	"context"
	"errors"

	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/internal/domain/types"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/passhash"
)

type AuthService struct {
	userRepo     UserRepo
	tokenService TokenProvider
	log          logger.Logger
}

func NewAuthService(userRepo UserRepo, tokenService TokenProvider, log logger.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		log:          log,
	}
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same error so callers cannot enumerate
// registered accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "login_user")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrUnexpected
	}

	if user == nil {
		return nil, nil, types.ErrInvalidCredentials
	}

	if ok, err := passhash.VerifyPassword(password, user.PasswordHash); err != nil || !ok {
		return nil, nil, types.ErrInvalidCredentials
	}

	tokens, err := s.tokenService.GenerateTokens(ctx, user)
	if err != nil {
		s.log.Error(ctx, "failed to generate tokens", err)
		return nil, nil, ErrTokenGenerateFail
	}

	return user, tokens, nil
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *models.UserCreateRequest) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "register_user")

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrUnexpected
	}
	if existing != nil {
		return nil, types.ErrDuplicateUser
	}

	hash, err := passhash.HashPassword(req.Password)
	if err != nil {
		s.log.Error(ctx, "failed to generate hash from password", err)
		return nil, ErrUnexpected
	}

	newUser := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	id, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		// the unique index catches the race between the existence
		// check and the insert
		if errors.Is(err, types.ErrDuplicateUser) {
			return nil, types.ErrDuplicateUser
		}
		s.log.Error(ctx, "failed to save user", err)
		return nil, ErrUnexpected
	}
	newUser.ID = id

	return newUser, nil
}

// Refresh rotates a refresh token into a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return s.tokenService.Refresh(ctx, refreshToken)
}

// Authenticate validates a bearer token and loads the user it belongs to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "authenticate")

	claims, err := s.tokenService.Validate(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != models.AccessToken {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUnexpected
	}
	if user == nil {
		return nil, types.ErrUserNotFound
	}

	return user, nil
}
