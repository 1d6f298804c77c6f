package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/apperrors"
	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	portssvc "github.com/bhhaskin/workspaces_app/internal/core/ports/services"
	"github.com/bhhaskin/workspaces_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type membershipFixture struct {
	workspaceRepo  *MockWorkspaceRepository
	membershipRepo *MockMembershipRepository
	userRepo       *MockUserRepository
	roleRepo       *MockRoleRepository
	service        portssvc.MembershipSvcFacade
}

// newMembershipFixture wires the service with a workspace owned by "owner-1",
// known users and the default roles resolvable.
func newMembershipFixture() *membershipFixture {
	f := &membershipFixture{}

	f.workspaceRepo = &MockWorkspaceRepository{
		FindWorkspaceByIDFn: func(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
			if workspaceID == "ws-1" {
				return testWorkspace("owner-1"), nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	f.membershipRepo = &MockMembershipRepository{
		FindMembershipFn: func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	f.userRepo = &MockUserRepository{
		FindUserByIDFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return testUser(userID), nil
		},
	}
	f.roleRepo = &MockRoleRepository{
		FindRoleBySlugFn: func(ctx context.Context, slug, scope string) (*domain.Role, error) {
			for _, role := range domain.DefaultRoles() {
				if role.Slug == slug && role.Scope == scope {
					return &role, nil
				}
			}
			return nil, apperrors.ErrNotFound
		},
		FindRolesByMembershipFn: func(ctx context.Context, workspaceID, userID string) ([]domain.Role, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	roleSvc := services.NewRoleService(f.roleRepo)
	authorizer := services.NewAuthorizationService(f.membershipRepo, roleSvc)
	f.service = services.NewMembershipService(f.membershipRepo, f.workspaceRepo, f.userRepo, roleSvc, authorizer)
	return f
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner adds member with role", func(t *testing.T) {
		f := newMembershipFixture()
		var upserted *domain.Membership
		f.membershipRepo.UpsertMembershipFn = func(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
			upserted = &membership
			return &membership, nil
		}

		role := domain.RoleSlugEditor
		membership, err := f.service.AddMember(ctx, "ws-1", "user-2", &role, "owner-1")
		require.NoError(t, err)
		require.NotNil(t, membership)
		assert.Equal(t, "user-2", membership.UserID)
		assert.Equal(t, []string{domain.RoleSlugEditor}, membership.RoleSlugs)
		require.NotNil(t, upserted)
		assert.NotEmpty(t, upserted.MembershipID)
	})

	t.Run("member added without role carries no grants", func(t *testing.T) {
		f := newMembershipFixture()
		var upserted *domain.Membership
		f.membershipRepo.UpsertMembershipFn = func(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
			upserted = &membership
			return &membership, nil
		}

		membership, err := f.service.AddMember(ctx, "ws-1", "user-2", nil, "owner-1")
		require.NoError(t, err)
		require.NotNil(t, membership)
		require.NotNil(t, upserted)
		assert.Nil(t, upserted.RoleSlugs)
	})

	t.Run("owner can never be added as member", func(t *testing.T) {
		f := newMembershipFixture()
		_, err := f.service.AddMember(ctx, "ws-1", "owner-1", nil, "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		f := newMembershipFixture()
		role := "no-such-role"
		_, err := f.service.AddMember(ctx, "ws-1", "user-2", &role, "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("non-manager requester forbidden", func(t *testing.T) {
		f := newMembershipFixture()
		_, err := f.service.AddMember(ctx, "ws-1", "user-2", nil, "stranger")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("unknown workspace", func(t *testing.T) {
		f := newMembershipFixture()
		_, err := f.service.AddMember(ctx, "ws-missing", "user-2", nil, "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAddMemberReactivatesRemovedRow(t *testing.T) {
	ctx := context.Background()

	// reactivatingUpsert emulates the store's upsert contract: same
	// membership identifier and creation time, removal flag cleared, and
	// roles replaced only when the caller supplied some.
	reactivatingUpsert := func(original *domain.Membership) func(context.Context, domain.Membership) (*domain.Membership, error) {
		return func(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
			reactivated := *original
			reactivated.RemovedAt = nil
			reactivated.LastJoinedAt = membership.LastJoinedAt
			if membership.RoleSlugs != nil {
				reactivated.RoleSlugs = membership.RoleSlugs
			}
			return &reactivated, nil
		}
	}

	t.Run("identity and creation time survive", func(t *testing.T) {
		f := newMembershipFixture()
		original := removedMembership("ws-1", "user-2")
		f.membershipRepo.UpsertMembershipFn = reactivatingUpsert(original)

		membership, err := f.service.AddMember(ctx, "ws-1", "user-2", nil, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, original.MembershipID, membership.MembershipID)
		assert.Equal(t, original.CreatedAt, membership.CreatedAt)
		assert.True(t, membership.IsActive())
	})

	t.Run("re-add without role keeps prior grants", func(t *testing.T) {
		f := newMembershipFixture()
		original := removedMembership("ws-1", "user-2")
		original.RoleSlugs = []string{domain.RoleSlugEditor}
		var passed []string
		f.membershipRepo.UpsertMembershipFn = func(ctx context.Context, membership domain.Membership) (*domain.Membership, error) {
			passed = membership.RoleSlugs
			return reactivatingUpsert(original)(ctx, membership)
		}

		membership, err := f.service.AddMember(ctx, "ws-1", "user-2", nil, "owner-1")
		require.NoError(t, err)
		assert.Nil(t, passed, "no role supplied must reach the store as nil, not an empty slice")
		assert.Equal(t, []string{domain.RoleSlugEditor}, membership.RoleSlugs)
	})

	t.Run("re-add with role replaces prior grants", func(t *testing.T) {
		f := newMembershipFixture()
		original := removedMembership("ws-1", "user-2")
		original.RoleSlugs = []string{domain.RoleSlugEditor}
		f.membershipRepo.UpsertMembershipFn = reactivatingUpsert(original)

		role := domain.RoleSlugViewer
		membership, err := f.service.AddMember(ctx, "ws-1", "user-2", &role, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, []string{domain.RoleSlugViewer}, membership.RoleSlugs)
	})
}

func TestUpdateMemberRole(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces role of active member", func(t *testing.T) {
		f := newMembershipFixture()
		current := activeMembership("ws-1", "user-2")
		current.RoleSlugs = []string{domain.RoleSlugViewer}
		var replaced []string
		f.membershipRepo.FindMembershipFn = func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if userID == "user-2" {
				m := *current
				if replaced != nil {
					m.RoleSlugs = replaced
				}
				return &m, nil
			}
			return nil, apperrors.ErrNotFound
		}
		f.membershipRepo.UpdateMembershipRolesFn = func(ctx context.Context, workspaceID, userID string, roleSlugs []string) error {
			replaced = roleSlugs
			return nil
		}

		membership, err := f.service.UpdateMemberRole(ctx, "ws-1", "user-2", domain.RoleSlugAdmin, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, []string{domain.RoleSlugAdmin}, membership.RoleSlugs)
	})

	t.Run("removed member not updatable", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.FindMembershipFn = func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if userID == "user-2" {
				return removedMembership("ws-1", "user-2"), nil
			}
			return nil, apperrors.ErrNotFound
		}

		_, err := f.service.UpdateMemberRole(ctx, "ws-1", "user-2", domain.RoleSlugAdmin, "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("marks member removed", func(t *testing.T) {
		f := newMembershipFixture()
		var removedUser string
		f.membershipRepo.MarkMembershipRemovedFn = func(ctx context.Context, workspaceID, userID string, removedAt time.Time) error {
			removedUser = userID
			return nil
		}

		err := f.service.RemoveMember(ctx, "ws-1", "user-2", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "user-2", removedUser)
	})

	t.Run("removing the owner is invalid", func(t *testing.T) {
		f := newMembershipFixture()
		err := f.service.RemoveMember(ctx, "ws-1", "owner-1", "owner-1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
	})

	t.Run("idempotent when already removed", func(t *testing.T) {
		f := newMembershipFixture()
		calls := 0
		f.membershipRepo.MarkMembershipRemovedFn = func(ctx context.Context, workspaceID, userID string, removedAt time.Time) error {
			calls++
			return nil // repository treats an already-removed row as a no-op
		}

		require.NoError(t, f.service.RemoveMember(ctx, "ws-1", "user-2", "owner-1"))
		require.NoError(t, f.service.RemoveMember(ctx, "ws-1", "user-2", "owner-1"))
		assert.Equal(t, 2, calls)
	})
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("active listing excludes removed rows", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.ListActiveMembersFn = func(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
			return []domain.Membership{*activeMembership("ws-1", "user-2")}, nil
		}

		members, err := f.service.ListActiveMembers(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.True(t, members[0].IsActive())
	})

	t.Run("including removed needs manage permission", func(t *testing.T) {
		f := newMembershipFixture()
		// user-2 is an active plain member: enough to view, not to manage.
		f.membershipRepo.FindMembershipFn = func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if userID == "user-2" {
				return activeMembership("ws-1", "user-2"), nil
			}
			return nil, apperrors.ErrNotFound
		}

		_, err := f.service.ListMembersIncludingRemoved(ctx, "ws-1", "user-2")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("empty workspace lists empty slice", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.ListActiveMembersFn = func(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
			return nil, nil
		}

		members, err := f.service.ListActiveMembers(ctx, "ws-1", "owner-1")
		require.NoError(t, err)
		assert.NotNil(t, members)
		assert.Empty(t, members)
	})
}

func TestListMembersPage(t *testing.T) {
	ctx := context.Background()

	t.Run("passes token through and returns the next one", func(t *testing.T) {
		f := newMembershipFixture()
		inToken := "page-2"
		outToken := "page-3"
		f.membershipRepo.ListMembershipsPageFn = func(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error) {
			assert.Equal(t, "ws-1", workspaceID)
			assert.False(t, includeRemoved)
			assert.Equal(t, 20, limit)
			require.NotNil(t, nextToken)
			assert.Equal(t, inToken, *nextToken)
			return []domain.Membership{*activeMembership("ws-1", "user-2")}, &outToken, nil
		}

		members, token, err := f.service.ListMembersPage(ctx, "ws-1", false, 20, &inToken, "owner-1")
		require.NoError(t, err)
		require.Len(t, members, 1)
		require.NotNil(t, token)
		assert.Equal(t, outToken, *token)
	})

	t.Run("including removed needs manage permission", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.FindMembershipFn = func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if userID == "user-2" {
				return activeMembership("ws-1", "user-2"), nil
			}
			return nil, apperrors.ErrNotFound
		}
		f.membershipRepo.ListMembershipsPageFn = func(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error) {
			t.Fatal("repository must not be reached without permission")
			return nil, nil, nil
		}

		_, _, err := f.service.ListMembersPage(ctx, "ws-1", true, 20, nil, "user-2")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("active member can page active rows", func(t *testing.T) {
		f := newMembershipFixture()
		f.membershipRepo.FindMembershipFn = func(ctx context.Context, workspaceID, userID string) (*domain.Membership, error) {
			if userID == "user-2" {
				return activeMembership("ws-1", "user-2"), nil
			}
			return nil, apperrors.ErrNotFound
		}
		f.membershipRepo.ListMembershipsPageFn = func(ctx context.Context, workspaceID string, includeRemoved bool, limit int, nextToken *string) ([]domain.Membership, *string, error) {
			return nil, nil, nil
		}

		members, token, err := f.service.ListMembersPage(ctx, "ws-1", false, 20, nil, "user-2")
		require.NoError(t, err)
		assert.NotNil(t, members)
		assert.Empty(t, members)
		assert.Nil(t, token)
	})
}
