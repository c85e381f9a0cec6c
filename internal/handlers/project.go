package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	memberService  MemberServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, memberService MemberServiceInterface) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, memberService: memberService}
}

// List is the portfolio: every project with its progress, filtered by the
// q and rag query parameters.
func (h *ProjectHandler) List(c *drift.Context) {
	var rag models.RAGStatus
	if raw := c.QueryParam("rag"); raw != "" {
		parsed, ok := models.ParseRAGStatus(raw)
		if !ok {
			c.BadRequest("invalid rag status")
			return
		}
		rag = parsed
	}

	projects, err := h.projectService.ListWithProgress(requestContext(c))
	if err != nil {
		respondError(c, err, "failed to list projects")
		return
	}

	_ = c.JSON(200, services.BuildPortfolio(projects, c.QueryParam("q"), rag))
}

func (h *ProjectHandler) Create(c *drift.Context) {
	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	target, err := optionalDate(req.TargetDate)
	if err != nil {
		c.BadRequest("target_date must be YYYY-MM-DD")
		return
	}

	project, err := h.projectService.Create(requestContext(c), middleware.GetRole(c), middleware.GetUserID(c), services.CreateProjectInput{
		Name:        req.Name,
		Location:    req.Location,
		ProjectType: req.ProjectType,
		TargetDate:  target,
	})
	if err != nil {
		respondError(c, err, "failed to create project")
		return
	}

	_ = c.JSON(201, project)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetByID(requestContext(c), projectID)
	if err != nil {
		respondError(c, err, "failed to load project")
		return
	}

	_ = c.JSON(200, project)
}

func (h *ProjectHandler) UpdateRAGStatus(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.UpdateRAGStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	project, err := h.projectService.UpdateRAGStatus(requestContext(c), middleware.GetRole(c), projectID, req.RAGStatus)
	if err != nil {
		respondError(c, err, "failed to update project")
		return
	}

	_ = c.JSON(200, project)
}

func (h *ProjectHandler) ListMembers(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	members, err := h.memberService.ListByProject(requestContext(c), projectID)
	if err != nil {
		respondError(c, err, "failed to list members")
		return
	}

	_ = c.JSON(200, members)
}

func (h *ProjectHandler) AddMember(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	member, err := h.memberService.Add(requestContext(c), middleware.GetRole(c), projectID, req.UserID)
	if err != nil {
		respondError(c, err, "failed to add member")
		return
	}

	_ = c.JSON(201, member)
}

func (h *ProjectHandler) RemoveMember(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.memberService.Remove(requestContext(c), middleware.GetRole(c), projectID, userID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}
