package mapping

import (
	"github.com/alqattan-optics/optical_pos_app/internal/core/domain"
	"github.com/alqattan-optics/optical_pos_app/internal/models"
)

// ToModelStaffUser converts a domain StaffUser to a model StaffUser
func ToModelStaffUser(d domain.StaffUser) models.StaffUser {
	return models.StaffUser{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		DeletedAt:    d.DeletedAt,
	}
}

// ToDomainStaffUser converts a model StaffUser to a domain StaffUser
func ToDomainStaffUser(m models.StaffUser) domain.StaffUser {
	return domain.StaffUser{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		DeletedAt:    m.DeletedAt,
	}
}
