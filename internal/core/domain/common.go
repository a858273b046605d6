package domain

import "time"

// AuditFields holds standard audit information for catalog and staff
// entities. Invoices and work orders carry their own timestamps because
// their lifecycle fields (pickedUpAt, archivedAt) are the audit trail.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // StaffUser reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // StaffUser reference
}
