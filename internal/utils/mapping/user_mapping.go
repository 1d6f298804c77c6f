package mapping

import (
	"database/sql"

	"github.com/bhhaskin/workspaces_app/internal/core/domain"
	"github.com/bhhaskin/workspaces_app/internal/models"
)

// ToModelUser converts a domain User to a persistence model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		Email:        d.Email,
		AuthProvider: string(d.AuthProvider),
		IsVerified:   d.IsVerified,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
		DeletedAt: d.DeletedAt,
	}
	if d.PasswordHash != nil {
		m.PasswordHash = sql.NullString{String: *d.PasswordHash, Valid: true}
	}
	if d.RefreshTokenHash != nil {
		m.RefreshTokenHash = sql.NullString{String: *d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a persistence model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		Email:        m.Email,
		AuthProvider: domain.AuthProvider(m.AuthProvider),
		IsVerified:   m.IsVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
		DeletedAt: m.DeletedAt,
	}
	if m.PasswordHash.Valid {
		d.PasswordHash = &m.PasswordHash.String
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = &m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		d.RefreshTokenExpiryTime = &m.RefreshTokenExpiryTime.Time
	}
	return d
}

// ToDomainUserSlice converts a slice of model Users to domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
