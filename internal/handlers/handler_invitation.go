package handlers

import (
	"net/http"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/dto"
	"github.com/bhhaskin/workspaces_app/internal/middleware"
	"github.com/bhhaskin/workspaces_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// InvitationHandler handles workspace invitation related requests.
type InvitationHandler struct {
	invitationService portssvc.InvitationSvcFacade
	userService       portssvc.UserSvcFacade
	cfg               *config.Config
}

// NewInvitationHandler creates a new InvitationHandler.
func NewInvitationHandler(is portssvc.InvitationSvcFacade, us portssvc.UserSvcFacade, cfg *config.Config) *InvitationHandler {
	return &InvitationHandler{
		invitationService: is,
		userService:       us,
		cfg:               cfg,
	}
}

// registerInvitationRoutes sets up the invitation routes. Management routes
// are nested under the workspace; the respond routes stand alone since the
// invitee is usually not a member yet.
func registerInvitationRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewInvitationHandler(services.Invitation, services.User, cfg)

	workspaceScoped := rg.Group("/workspaces/:workspace_id/invitations")
	{
		workspaceScoped.GET("", h.ListInvitations)
		workspaceScoped.POST("", h.CreateInvitation)
		workspaceScoped.DELETE("/:invitation_id", h.RevokeInvitation)
	}

	rate, _ := limiter.NewRateFromFormatted(cfg.InvitationRateLimit)
	respondLimiter := limiter.New(memory.NewStore(), rate)

	respond := rg.Group("/workspace-invitations", middleware.RateLimit(respondLimiter))
	{
		respond.POST("/:invitation_id/accept", h.AcceptInvitation)
		respond.POST("/:invitation_id/decline", h.DeclineInvitation)
	}
}

// ListInvitations godoc
// @Summary List workspace invitations
// @Description Retrieves a page of the workspace's invitations, newest first. Requires the invitation management permission.
// @Tags invitations
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListInvitationsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invitations [get]
func (h *InvitationHandler) ListInvitations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListInvitationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	invitations, nextToken, err := h.invitationService.ListInvitations(c.Request.Context(),
		c.Param("workspace_id"), params.Limit, params.NextToken, userID)
	if err != nil {
		respondWithError(c, err, "Failed to list invitations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvitationsResponse(invitations, nextToken))
}

// CreateInvitation godoc
// @Summary Invite to workspace
// @Description Creates a pending invitation for the email address. A pending invitation for the same address is superseded in place. Omitting expiresAt applies the configured default.
// @Tags invitations
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param invitation body dto.CreateInvitationRequest true "Invitation to create"
// @Success 201 {object} dto.InvitationResponse
// @Failure 400 {object} ErrorResponse "Invalid email, past expiry or unknown role"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invitations [post]
func (h *InvitationHandler) CreateInvitation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	expiresAt := req.ExpiresAt
	if expiresAt == nil && h.cfg.InvitationExpiryDuration > 0 {
		t := time.Now().Add(h.cfg.InvitationExpiryDuration)
		expiresAt = &t
	}

	invitation, err := h.invitationService.Invite(c.Request.Context(),
		c.Param("workspace_id"), req.Email, req.Role, expiresAt, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvitationResponse(invitation))
}

// RevokeInvitation godoc
// @Summary Revoke invitation
// @Description Deletes a not-yet-resolved invitation belonging to the workspace.
// @Tags invitations
// @Param workspace_id path string true "Workspace ID"
// @Param invitation_id path string true "Invitation ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already accepted or declined"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/invitations/{invitation_id} [delete]
func (h *InvitationHandler) RevokeInvitation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.invitationService.Revoke(c.Request.Context(),
		c.Param("workspace_id"), c.Param("invitation_id"), userID); err != nil {
		respondWithError(c, err, "Failed to revoke invitation")
		return
	}

	c.Status(http.StatusNoContent)
}

// AcceptInvitation godoc
// @Summary Accept invitation
// @Description Accepts a pending invitation addressed to the authenticated user's email, creating or reactivating their membership.
// @Tags invitations
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 403 {object} ErrorResponse "Invitation addressed to a different email"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already accepted or declined"
// @Failure 410 {object} ErrorResponse "Invitation has expired"
// @Security BearerAuth
// @Router /workspace-invitations/{invitation_id}/accept [post]
func (h *InvitationHandler) AcceptInvitation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to resolve responding user")
		return
	}

	membership, err := h.invitationService.Accept(c.Request.Context(), c.Param("invitation_id"), user)
	if err != nil {
		respondWithError(c, err, "Failed to accept invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(membership))
}

// DeclineInvitation godoc
// @Summary Decline invitation
// @Description Terminally declines a pending invitation addressed to the authenticated user's email.
// @Tags invitations
// @Produce json
// @Param invitation_id path string true "Invitation ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 403 {object} ErrorResponse "Invitation addressed to a different email"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already accepted or declined"
// @Failure 410 {object} ErrorResponse "Invitation has expired"
// @Security BearerAuth
// @Router /workspace-invitations/{invitation_id}/decline [post]
func (h *InvitationHandler) DeclineInvitation(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to resolve responding user")
		return
	}

	invitation, err := h.invitationService.Decline(c.Request.Context(), c.Param("invitation_id"), user)
	if err != nil {
		respondWithError(c, err, "Failed to decline invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}
