package handlers

import (
	"net/url"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

// AdminHandler manages profiles: listing, invites and role changes.
type AdminHandler struct {
	userService  UserServiceInterface
	emailService EmailServiceInterface
	baseURL      string
}

func NewAdminHandler(userService UserServiceInterface, emailService EmailServiceInterface, baseURL string) *AdminHandler {
	return &AdminHandler{
		userService:  userService,
		emailService: emailService,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

func (h *AdminHandler) ListUsers(c *drift.Context) {
	users, err := h.userService.List(requestContext(c))
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = dto.NewUserResponse(&users[i])
	}
	_ = c.JSON(200, response)
}

// Invite creates the profile and emails the accept link. Without a mail
// server the link is returned to the admin instead.
func (h *AdminHandler) Invite(c *drift.Context) {
	var req dto.InviteUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := requestContext(c)
	actorID := middleware.GetUserID(c)
	user, token, err := h.userService.Invite(ctx, middleware.GetRole(c), actorID, services.InviteInput{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err, "failed to invite user")
		return
	}

	acceptURL := h.baseURL + "/invite/accept?token=" + url.QueryEscape(token)
	response := dto.InviteResponse{User: dto.NewUserResponse(user)}

	if h.emailService.IsConfigured() {
		inviterName := middleware.GetUserEmail(c)
		if inviter, err := h.userService.GetByID(ctx, actorID); err == nil && inviter.FullName != "" {
			inviterName = inviter.FullName
		}
		if err := h.emailService.SendInvite(user.Email, user.FullName, string(user.Role), inviterName, acceptURL); err == nil {
			response.EmailSent = true
		}
	}
	if !response.EmailSent {
		response.AcceptURL = acceptURL
	}

	_ = c.JSON(201, response)
}

func (h *AdminHandler) UpdateRole(c *drift.Context) {
	userID, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.UpdateRole(requestContext(c), middleware.GetRole(c), userID, req.Role)
	if err != nil {
		respondError(c, err, "failed to update role")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}
