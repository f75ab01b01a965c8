package handler

import (
	"context"
	"net/http"

	"github.com/fareline/fareline/internal/adapter/http/handler/dto"
	"github.com/fareline/fareline/internal/domain/models"
	"github.com/fareline/fareline/pkg/logger"
	wrap "github.com/fareline/fareline/pkg/logger/wrapper"
	"github.com/fareline/fareline/pkg/validator"
)

type AuthService interface {
	Register(ctx context.Context, newUser *models.UserCreateRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type Auth struct {
	auth AuthService
	l    logger.Logger
}

func NewAuth(service AuthService, l logger.Logger) *Auth {
	return &Auth{
		auth: service,
		l:    l,
	}
}

// Signup godoc
// @Summary      Sign up
// @Description  Creates a new user account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SignupRequest  true  "New user"
// @Success      201      {object}  map[string]any
// @Failure      400      {object}  map[string]any
// @Failure      422      {object}  map[string]any
// @Router       /auth/signup [post]
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "signup_user")

	req := &dto.SignupRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.l.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateSignup(v, req)

	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	user, err := h.auth.Register(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register a new user", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"message": "User registered successfully",
		"user":    user,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and issues a token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.LoginRequest  true  "Credentials"
// @Success      200      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login_user")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	user, tokens, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to login user", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"user":          user,
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Rotates a refresh token into a fresh token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      dto.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  map[string]any
// @Failure      401      {object}  map[string]any
// @Router       /auth/refresh [post]
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "refresh_token")

	req := &dto.RefreshTokenRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRefreshToken(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	tokens, err := h.auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to refresh token pair", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"token":         tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Profile godoc
// @Summary      Current user
// @Description  Returns the authenticated user's profile
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /auth/me [get]
func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_profile")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	response := envelope{
		"user": user,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
