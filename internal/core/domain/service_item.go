package domain

import "github.com/shopspring/decimal"

// ServiceCategory groups catalog services for display.
type ServiceCategory string

const (
	ServiceCategoryExam   ServiceCategory = "exam"
	ServiceCategoryRepair ServiceCategory = "repair"
	ServiceCategoryOther  ServiceCategory = "other"
)

// ServiceItem is a billable service in the clinic catalog (eye exams,
// repairs and the like).
type ServiceItem struct {
	ServiceID   string          `json:"serviceId"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    ServiceCategory `json:"category"`
	AuditFields
}
