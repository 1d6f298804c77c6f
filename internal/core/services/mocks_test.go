package services_test

import (
	"context"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository (based on service usage) ---

type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn       func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	FindUsersFn          func(ctx context.Context, limit, offset int) ([]domain.User, error)
	SaveUserFn           func(ctx context.Context, user domain.User) error
	UpdateUserFn         func(ctx context.Context, user domain.User) error
	UpdateRefreshTokenFn func(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
	ClearRefreshTokenFn  func(ctx context.Context, userID string) error
	MarkUserDeletedFn    func(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindUserByEmailFn != nil {
		return m.FindUserByEmailFn(ctx, email)
	}
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if m.FindUsersFn != nil {
		return m.FindUsersFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, user)
	}
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error {
	if m.UpdateRefreshTokenFn != nil {
		return m.UpdateRefreshTokenFn(ctx, userID, refreshTokenHash, expiryTime)
	}
	return m.Called(ctx, userID, refreshTokenHash, expiryTime).Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	if m.ClearRefreshTokenFn != nil {
		return m.ClearRefreshTokenFn(ctx, userID)
	}
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	if m.MarkUserDeletedFn != nil {
		return m.MarkUserDeletedFn(ctx, userID, deletedAt, deletedBy)
	}
	return m.Called(ctx, userID, deletedAt, deletedBy).Error(0)
}

// --- Mock WorkspaceRepository ---

type MockWorkspaceRepository struct {
	mock.Mock
	FindWorkspaceByIDFn      func(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	FindWorkspaceBySlugFn    func(ctx context.Context, slug string) (*domain.Workspace, error)
	ListWorkspacesByUserIDFn func(ctx context.Context, userID string) ([]domain.Workspace, error)
	SaveWorkspaceFn          func(ctx context.Context, workspace domain.Workspace) error
	UpdateWorkspaceFn        func(ctx context.Context, workspace domain.Workspace) error
	UpdateBillingContactFn   func(ctx context.Context, workspaceID string, billingContactID *string, updatedBy string) error
	DeleteWorkspaceFn        func(ctx context.Context, workspaceID string) error
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	if m.FindWorkspaceByIDFn != nil {
		return m.FindWorkspaceByIDFn(ctx, workspaceID)
	}
	args := m.Called(ctx, workspaceID)
	var workspace *domain.Workspace
	if args.Get(0) != nil {
		workspace = args.Get(0).(*domain.Workspace)
	}
	return workspace, args.Error(1)
}

func (m *MockWorkspaceRepository) FindWorkspaceBySlug(ctx context.Context, slug string) (*domain.Workspace, error) {
	if m.FindWorkspaceBySlugFn != nil {
		return m.FindWorkspaceBySlugFn(ctx, slug)
	}
	args := m.Called(ctx, slug)
	var workspace *domain.Workspace
	if args.Get(0) != nil {
		workspace = args.Get(0).(*domain.Workspace)
	}
	return workspace, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	if m.ListWorkspacesByUserIDFn != nil {
		return m.ListWorkspacesByUserIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var workspaces []domain.Workspace
	if args.Get(0) != nil {
		workspaces = args.Get(0).([]domain.Workspace)
	}
	return workspaces, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	if m.SaveWorkspaceFn != nil {
		return m.SaveWorkspaceFn(ctx, workspace)
	}
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	if m.UpdateWorkspaceFn != nil {
		return m.UpdateWorkspaceFn(ctx, workspace)
	}
	return m.Called(ctx, workspace).Error(0)
}

func (m *MockWorkspaceRepository) UpdateBillingContact(ctx context.Context, workspaceID string, billingContactID *string, updatedBy string) error {
	if m.UpdateBillingContactFn != nil {
		return m.UpdateBillingContactFn(ctx, workspaceID, billingContactID, updatedBy)
	}
	return m.Called(ctx, workspaceID, billingContactID, updatedBy).Error(0)
}

func (m *MockWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	if m.DeleteWorkspaceFn != nil {
		return m.DeleteWorkspaceFn(ctx, workspaceID)
	}
	return m.Called(ctx, workspaceID).Error(0)
}

// --- Mock MembershipRepository ---

type MockMembershipRepository struct {
	mock.Mock
	FindMembershipFn              func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error)
	ListActiveMembersFn           func(ctx context.Context, workspaceID string) ([]domain.Membership, error)
	ListMembersIncludingRemovedFn func(ctx context.Context, workspaceID string) ([]domain.Membership, error)
	ListMembershipsPageFn         func(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error)
	UpsertMembershipFn            func(ctx context.Context, membership domain.Membership) (*domain.Membership, error)
	UpdateMembershipRolesFn       func(ctx context.Context, workspaceID, userID string, roleSlugs []string) error
	MarkMembershipRemovedFn       func(ctx context.Context, workspaceID, userID string, removedAt time.Time) error
}

func (m *MockMembershipRepository) FindMembership(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
	if m.FindMembershipFn != nil {
		return m.FindMembershipFn(ctx, workspaceID, userID)
	}
	args := m.Called(ctx, workspaceID, userID)
	var membership *domain.Membership
	if args.Get(0) != nil {
		membership = args.Get(0).(*domain.Membership)
	}
	return membership, args.Error(1)
}

func (m *MockMembershipRepository) ListActiveMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	if m.ListActiveMembersFn != nil {
		return m.ListActiveMembersFn(ctx, workspaceID)
	}
	args := m.Called(ctx, workspaceID)
	var members []domain.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Membership)
	}
	return members, args.Error(1)
}

func (m *MockMembershipRepository) ListMembersIncludingRemoved(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	if m.ListMembersIncludingRemovedFn != nil {
		return m.ListMembersIncludingRemovedFn(ctx, workspaceID)
	}
	args := m.Called(ctx, workspaceID)
	var members []domain.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Membership)
	}
	return members, args.Error(1)
}

func (m *MockMembershipRepository) ListMembershipsPage(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error) {
	if m.ListMembershipsPageFn != nil {
		return m.ListMembershipsPageFn(ctx, workspaceID, includeRemoved, limit, nextToken)
	}
	args := m.Called(ctx, workspaceID, includeRemoved, limit, nextToken)
	var members []domain.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.Membership)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return members, token, args.Error(2)
}

func (m *MockMembershipRepository) UpsertMembership(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
	if m.UpsertMembershipFn != nil {
		return m.UpsertMembershipFn(ctx, membership)
	}
	args := m.Called(ctx, membership)
	var result *domain.Membership
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.Membership)
	}
	return result, args.Error(1)
}

func (m *MockMembershipRepository) UpdateMembershipRoles(ctx context.Context, workspaceID, userID string, roleSlugs []string) error {
	if m.UpdateMembershipRolesFn != nil {
		return m.UpdateMembershipRolesFn(ctx, workspaceID, userID, roleSlugs)
	}
	return m.Called(ctx, workspaceID, userID, roleSlugs).Error(0)
}

func (m *MockMembershipRepository) MarkMembershipRemoved(ctx context.Context, workspaceID, userID string, removedAt time.Time) error {
	if m.MarkMembershipRemovedFn != nil {
		return m.MarkMembershipRemovedFn(ctx, workspaceID, userID, removedAt)
	}
	return m.Called(ctx, workspaceID, userID, removedAt).Error(0)
}

// --- Mock InvitationRepository ---

type MockInvitationRepository struct {
	mock.Mock
	FindInvitationByIDFn           func(ctx context.Context, invitationID string) (*domain.Invitation, error)
	FindPendingInvitationFn        func(ctx context.Context, workspaceID, email string) (*domain.Invitation, error)
	ListInvitationsByWorkspaceIDFn func(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Invitation, *string, error)
	UpsertPendingInvitationFn      func(ctx context.Context, invitation domain.Invitation) (*domain.Invitation, error)
	MarkAcceptedFn                 func(ctx context.Context, invitationID string, acceptedAt time.Time, membership domain.Membership) (*domain.Membership, error)
	MarkDeclinedFn                 func(ctx context.Context, invitationID string, declinedAt time.Time) error
	DeleteInvitationFn             func(ctx context.Context, invitationID string) error
}

func (m *MockInvitationRepository) FindInvitationByID(ctx context.Context, invitationID string) (*domain.Invitation, error) {
	if m.FindInvitationByIDFn != nil {
		return m.FindInvitationByIDFn(ctx, invitationID)
	}
	args := m.Called(ctx, invitationID)
	var invitation *domain.Invitation
	if args.Get(0) != nil {
		invitation = args.Get(0).(*domain.Invitation)
	}
	return invitation, args.Error(1)
}

func (m *MockInvitationRepository) FindPendingInvitation(ctx context.Context, workspaceID, email string) (*domain.Invitation, error) {
	if m.FindPendingInvitationFn != nil {
		return m.FindPendingInvitationFn(ctx, workspaceID, email)
	}
	args := m.Called(ctx, workspaceID, email)
	var invitation *domain.Invitation
	if args.Get(0) != nil {
		invitation = args.Get(0).(*domain.Invitation)
	}
	return invitation, args.Error(1)
}

func (m *MockInvitationRepository) ListInvitationsByWorkspaceID(ctx context.Context, workspaceID string, limit int, nextToken *string) ([]domain.Invitation, *string, error) {
	if m.ListInvitationsByWorkspaceIDFn != nil {
		return m.ListInvitationsByWorkspaceIDFn(ctx, workspaceID, limit, nextToken)
	}
	args := m.Called(ctx, workspaceID, limit, nextToken)
	var invitations []domain.Invitation
	if args.Get(0) != nil {
		invitations = args.Get(0).([]domain.Invitation)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return invitations, token, args.Error(2)
}

func (m *MockInvitationRepository) UpsertPendingInvitation(ctx context.Context, invitation domain.Invitation) (*domain.Invitation, error) {
	if m.UpsertPendingInvitationFn != nil {
		return m.UpsertPendingInvitationFn(ctx, invitation)
	}
	args := m.Called(ctx, invitation)
	var result *domain.Invitation
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.Invitation)
	}
	return result, args.Error(1)
}

func (m *MockInvitationRepository) MarkAccepted(ctx context.Context, invitationID string, acceptedAt time.Time, membership domain.Membership) (*domain.Membership, error) {
	if m.MarkAcceptedFn != nil {
		return m.MarkAcceptedFn(ctx, invitationID, acceptedAt, membership)
	}
	args := m.Called(ctx, invitationID, acceptedAt, membership)
	var result *domain.Membership
	if args.Get(0) != nil {
		result = args.Get(0).(*domain.Membership)
	}
	return result, args.Error(1)
}

func (m *MockInvitationRepository) MarkDeclined(ctx context.Context, invitationID string, declinedAt time.Time) error {
	if m.MarkDeclinedFn != nil {
		return m.MarkDeclinedFn(ctx, invitationID, declinedAt)
	}
	return m.Called(ctx, invitationID, declinedAt).Error(0)
}

func (m *MockInvitationRepository) DeleteInvitation(ctx context.Context, invitationID string) error {
	if m.DeleteInvitationFn != nil {
		return m.DeleteInvitationFn(ctx, invitationID)
	}
	return m.Called(ctx, invitationID).Error(0)
}

// --- Mock RoleRepository ---

type MockRoleRepository struct {
	mock.Mock
	FindRoleBySlugFn        func(ctx context.Context, slug, scope string) (*domain.Role, error)
	FindRolesByMembershipFn func(ctx context.Context, workspaceID, userID string) ([]domain.Role, error)
	SaveRoleFn              func(ctx context.Context, role domain.Role) error
}

func (m *MockRoleRepository) FindRoleBySlug(ctx context.Context, slug, scope string) (*domain.Role, error) {
	if m.FindRoleBySlugFn != nil {
		return m.FindRoleBySlugFn(ctx, slug, scope)
	}
	args := m.Called(ctx, slug, scope)
	var role *domain.Role
	if args.Get(0) != nil {
		role = args.Get(0).(*domain.Role)
	}
	return role, args.Error(1)
}

func (m *MockRoleRepository) FindRolesByMembership(ctx context.Context, workspaceID, userID string) ([]domain.Role, error) {
	if m.FindRolesByMembershipFn != nil {
		return m.FindRolesByMembershipFn(ctx, workspaceID, userID)
	}
	args := m.Called(ctx, workspaceID, userID)
	var roles []domain.Role
	if args.Get(0) != nil {
		roles = args.Get(0).([]domain.Role)
	}
	return roles, args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	if m.SaveRoleFn != nil {
		return m.SaveRoleFn(ctx, role)
	}
	return m.Called(ctx, role).Error(0)
}
