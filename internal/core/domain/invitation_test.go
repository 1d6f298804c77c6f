package domain_test

import (
	"testing"
	"time"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestInvitation_IsPending(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		invitation domain.Invitation
		want       bool
	}{
		{
			name:       "fresh invitation with no expiry",
			invitation: domain.Invitation{Email: "a@example.com"},
			want:       true,
		},
		{
			name: "unexpired invitation",
			invitation: domain.Invitation{
				Email:     "a@example.com",
				ExpiresAt: timePtr(now.Add(24 * time.Hour)),
			},
			want: true,
		},
		{
			name: "expired invitation",
			invitation: domain.Invitation{
				Email:     "a@example.com",
				ExpiresAt: timePtr(now.Add(-time.Hour)),
			},
			want: false,
		},
		{
			name: "accepted invitation",
			invitation: domain.Invitation{
				Email:      "a@example.com",
				AcceptedAt: timePtr(now.Add(-time.Minute)),
			},
			want: false,
		},
		{
			name: "declined invitation",
			invitation: domain.Invitation{
				Email:      "a@example.com",
				DeclinedAt: timePtr(now.Add(-time.Minute)),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.invitation.IsPending(now))
		})
	}
}

func TestInvitation_EmailMatches(t *testing.T) {
	inv := domain.Invitation{Email: "member@example.com"}

	assert.True(t, inv.EmailMatches("member@example.com"))
	assert.True(t, inv.EmailMatches("Member@Example.COM"))
	assert.True(t, inv.EmailMatches("  member@example.com "))
	assert.False(t, inv.EmailMatches("other@example.com"))
	assert.False(t, inv.EmailMatches(""))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.co", domain.NormalizeEmail(" A@B.Co "))
	assert.Equal(t, "", domain.NormalizeEmail("   "))
}
