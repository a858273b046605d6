package models

import "github.com/shopspring/decimal"

// ServiceItem represents one row of the services catalog table.
type ServiceItem struct {
	ServiceID   string          `json:"serviceId" db:"service_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	AuditFields
}
