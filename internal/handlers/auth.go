package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
}

func NewAuthHandler(userService UserServiceInterface, tokenService TokenServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) SignIn(c *drift.Context) {
	var req dto.SignInRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := requestContext(c)
	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized(err.Error())
			return
		}
		c.InternalServerError("failed to sign in")
		return
	}

	h.issueTokens(c, user)
}

func (h *AuthHandler) AcceptInvite(c *drift.Context) {
	var req dto.AcceptInviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Token == "" {
		c.BadRequest("token is required")
		return
	}

	user, err := h.userService.AcceptInvite(requestContext(c), req.Token, req.Password)
	if err != nil {
		respondError(c, err, "failed to accept invite")
		return
	}

	h.issueTokens(c, user)
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := requestContext(c)
	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	tokenPair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	storedUserID, err := h.tokenService.RotateRefreshToken(ctx,
		services.HashToken(req.RefreshToken), services.HashToken(tokenPair.RefreshToken), expiresAt)
	if err != nil || storedUserID != userID {
		c.Unauthorized("refresh token not found or expired")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

func (h *AuthHandler) SignOut(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken != "" {
		_ = h.tokenService.RevokeRefreshToken(requestContext(c), services.HashToken(req.RefreshToken))
	}

	_ = c.JSON(200, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) SignOutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(requestContext(c), userID); err != nil {
		c.InternalServerError("failed to revoke tokens")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "all sessions signed out"})
}

// Session returns the current profile. The role comes from the profile, not
// the token, so a changed role shows up before the next refresh.
func (h *AuthHandler) Session(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.userService.GetByID(requestContext(c), userID)
	if err != nil {
		respondError(c, err, "failed to load session")
		return
	}

	_ = c.JSON(200, dto.SessionResponse{
		User: dto.NewUserResponse(user),
		Role: string(user.Role),
	})
}

func (h *AuthHandler) issueTokens(c *drift.Context, user *models.User) {
	tokenPair, err := h.jwtService.GenerateTokenPair(user)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(requestContext(c), user.ID, services.HashToken(tokenPair.RefreshToken), expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}
