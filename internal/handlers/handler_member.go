package handlers

import (
	"net/http"

	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// MemberHandler handles workspace membership related requests.
type MemberHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(ms portssvc.MembershipSvcFacade) *MemberHandler {
	return &MemberHandler{membershipService: ms}
}

// registerMemberRoutes sets up the membership routes nested under workspaces.
func registerMemberRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewMemberHandler(services.Membership)
	members := rg.Group("/workspaces/:workspace_id/members")
	{
		members.GET("", h.ListMembers)
		members.POST("", h.AddMember)
		members.GET("/:user_id", h.GetMember)
		members.PUT("/:user_id/role", h.UpdateMemberRole)
		members.DELETE("/:user_id", h.RemoveMember)
	}
}

// ListMembers godoc
// @Summary List workspace members
// @Description Retrieves a page of workspace members, newest first. Pass includeRemoved=true to include soft-removed memberships (requires member management permission).
// @Tags members
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from a previous page"
// @Param includeRemoved query bool false "Include removed memberships" default(false)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [get]
func (h *MemberHandler) ListMembers(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListMembersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	members, nextToken, err := h.membershipService.ListMembersPage(c.Request.Context(),
		c.Param("workspace_id"), params.IncludeRemoved, params.Limit, params.NextToken, userID)
	if err != nil {
		respondWithError(c, err, "Failed to list members")
		return
	}

	c.JSON(http.StatusOK, dto.ToListMembersResponse(members, nextToken))
}

// GetMember godoc
// @Summary Get workspace member
// @Description Retrieves the membership row for a user in the workspace, regardless of removal state.
// @Tags members
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	membership, err := h.membershipService.GetMembership(c.Request.Context(),
		c.Param("workspace_id"), c.Param("user_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve member")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(membership))
}

// AddMember godoc
// @Summary Add workspace member
// @Description Adds a user to the workspace, reactivating a previously removed membership when one exists. The workspace owner cannot be added as a member.
// @Tags members
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param member body dto.AddMemberRequest true "Member to add"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse "Target is the workspace owner or the role is unknown"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members [post]
func (h *MemberHandler) AddMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	membership, err := h.membershipService.AddMember(c.Request.Context(),
		c.Param("workspace_id"), req.UserID, req.Role, userID)
	if err != nil {
		respondWithError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, dto.ToMemberResponse(membership))
}

// UpdateMemberRole godoc
// @Summary Update member role
// @Description Replaces the role grant of an active member.
// @Tags members
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID"
// @Param role body dto.UpdateMemberRequest true "New role"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse "Unknown role"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id}/role [put]
func (h *MemberHandler) UpdateMemberRole(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	membership, err := h.membershipService.UpdateMemberRole(c.Request.Context(),
		c.Param("workspace_id"), c.Param("user_id"), req.Role, userID)
	if err != nil {
		respondWithError(c, err, "Failed to update member role")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberResponse(membership))
}

// RemoveMember godoc
// @Summary Remove workspace member
// @Description Soft-removes a member from the workspace. Removing an already removed member is a no-op.
// @Tags members
// @Param workspace_id path string true "Workspace ID"
// @Param user_id path string true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Target is the workspace owner"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/members/{user_id} [delete]
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.membershipService.RemoveMember(c.Request.Context(),
		c.Param("workspace_id"), c.Param("user_id"), userID); err != nil {
		respondWithError(c, err, "Failed to remove member")
		return
	}

	c.Status(http.StatusNoContent)
}
