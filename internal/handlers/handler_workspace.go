package handlers

import (
	"net/http"
	"strings"

	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/dto"
	"github.com/bhhaskin/workspaces_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// WorkspaceHandler handles workspace related requests.
type WorkspaceHandler struct {
	workspaceService  portssvc.WorkspaceSvcFacade
	membershipService portssvc.MembershipSvcFacade
	invitationService portssvc.InvitationSvcFacade
	billingService    portssvc.BillingSvcFacade
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(ws portssvc.WorkspaceSvcFacade, ms portssvc.MembershipSvcFacade, is portssvc.InvitationSvcFacade, bs portssvc.BillingSvcFacade) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: ws, membershipService: ms, invitationService: is, billingService: bs}
}

// registerWorkspaceRoutes sets up the routes for workspace management.
func registerWorkspaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewWorkspaceHandler(services.Workspace, services.Membership, services.Invitation, services.Billing)
	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.CreateWorkspace)
		workspaces.GET("", h.ListWorkspaces)
		workspaces.GET("/:workspace_id", h.GetWorkspaceByID)
		workspaces.PUT("/:workspace_id", h.UpdateWorkspace)
		workspaces.DELETE("/:workspace_id", h.DeleteWorkspace)
		workspaces.GET("/:workspace_id/billing-contact", h.GetBillingContact)
		workspaces.PUT("/:workspace_id/billing-contact", h.SetBillingContact)
		workspaces.GET("/:workspace_id/billing-quote", h.GetBillingQuote)
		workspaces.GET("/:workspace_id/usage", h.GetUsageReport)
	}
}

// requireUserID pulls the authenticated user from the context or aborts 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return "", false
	}
	return userID, true
}

// CreateWorkspace godoc
// @Summary Create workspace
// @Description Creates a new workspace owned by the authenticated user.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body dto.CreateWorkspaceRequest true "Workspace to create"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Slug already in use"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create workspace")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// ListWorkspaces godoc
// @Summary List workspaces
// @Description Retrieves the workspaces the authenticated user owns or is an active member of. Pass include=members,invitations to expand nested data where the user holds the required permissions.
// @Tags workspaces
// @Produce json
// @Param include query string false "Comma-separated expansions: members, invitations"
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list workspaces")
		return
	}

	resp := dto.ToListWorkspacesResponse(workspaces)

	expandMembers, expandInvitations := parseIncludes(c.Query("include"))
	if expandMembers || expandInvitations {
		for i := range resp.Workspaces {
			h.expandWorkspace(c, &resp.Workspaces[i], expandMembers, expandInvitations, userID)
		}
	}

	c.JSON(http.StatusOK, resp)
}

func parseIncludes(raw string) (members, invitations bool) {
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(part) {
		case "members":
			members = true
		case "invitations":
			invitations = true
		}
	}
	return members, invitations
}

// expandWorkspace attaches members and invitations to the response entry.
// Workspaces where the user lacks the needed permission are left unexpanded
// rather than failing the whole listing.
func (h *WorkspaceHandler) expandWorkspace(c *gin.Context, ws *dto.WorkspaceResponse, expandMembers, expandInvitations bool, userID string) {
	ctx := c.Request.Context()
	if expandMembers {
		members, err := h.membershipService.ListActiveMembers(ctx, ws.WorkspaceID, userID)
		if err == nil {
			ws.Members = dto.ToListMembersResponse(members, nil).Members
		}
	}
	if expandInvitations {
		invitations, _, err := h.invitationService.ListInvitations(ctx, ws.WorkspaceID, expansionLimit, nil, userID)
		if err == nil {
			ws.Invitations = dto.ToListInvitationsResponse(invitations, nil).Invitations
		}
	}
}

// expansionLimit caps nested invitation expansion on the workspace listing;
// the dedicated invitations endpoint pages through the rest.
const expansionLimit = 50

// GetWorkspaceByID godoc
// @Summary Get workspace
// @Description Retrieves a workspace the authenticated user can view.
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *WorkspaceHandler) GetWorkspaceByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspaceByID(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// UpdateWorkspace godoc
// @Summary Update workspace
// @Description Applies a partial update to the workspace's name, slug or metadata.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Slug already in use"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [put]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), c.Param("workspace_id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update workspace")
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// DeleteWorkspace godoc
// @Summary Delete workspace
// @Description Deletes the workspace along with its memberships and invitations. Owner only.
// @Tags workspaces
// @Param workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [delete]
func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), c.Param("workspace_id"), userID); err != nil {
		respondWithError(c, err, "Failed to delete workspace")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBillingContact godoc
// @Summary Get billing contact
// @Description Resolves the workspace's billable party: the designated contact while they remain an active member, otherwise the owner.
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/billing-contact [get]
func (h *WorkspaceHandler) GetBillingContact(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	contact, err := h.workspaceService.BillingContact(c.Request.Context(), c.Param("workspace_id"))
	if err != nil {
		respondWithError(c, err, "Failed to resolve billing contact")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(contact))
}

// SetBillingContact godoc
// @Summary Set billing contact
// @Description Designates an active member as the billable party, or clears the designation when userID is null.
// @Tags workspaces
// @Accept json
// @Param workspace_id path string true "Workspace ID"
// @Param contact body dto.SetBillingContactRequest true "Billing contact designation"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Target is not an active member"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/billing-contact [put]
func (h *WorkspaceHandler) SetBillingContact(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SetBillingContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.workspaceService.SetBillingContact(c.Request.Context(), c.Param("workspace_id"), req.UserID, userID); err != nil {
		respondWithError(c, err, "Failed to set billing contact")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBillingQuote godoc
// @Summary Get billing quote
// @Description Computes the workspace's monthly charge from its plan and current active seat count.
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.BillingQuoteResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/billing-quote [get]
func (h *WorkspaceHandler) GetBillingQuote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	quote, err := h.billingService.QuoteWorkspace(c.Request.Context(), c.Param("workspace_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to compute billing quote")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillingQuoteResponse(quote))
}

// GetUsageReport godoc
// @Summary Get usage report
// @Description Reports the workspace's usage counters against its plan quotas. Returns 404 when usage tracking is not enabled on the deployment.
// @Tags workspaces
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.UsageReportResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/usage [get]
func (h *WorkspaceHandler) GetUsageReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	workspaceID := c.Param("workspace_id")
	report, err := h.billingService.UsageReport(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondWithError(c, err, "Failed to compute usage report")
		return
	}

	c.JSON(http.StatusOK, dto.ToUsageReportResponse(workspaceID, report))
}
