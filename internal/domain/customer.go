package domain

import (
	"time"

	"github.com/google/uuid"
)

type CustomerRole string

const (
	CustomerRoleCustomer CustomerRole = "customer"
	CustomerRoleStaff    CustomerRole = "staff"
)

type Customer struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	PasswordHash  string       `json:"-"`
	Role          CustomerRole `json:"role"`
	DriverLicense string       `json:"driver_license,omitempty"`
	CreatedOn     time.Time    `json:"created_on"`
}
