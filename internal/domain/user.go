package domain

// Role of a mock dashboard user
type Role string

const (
	RoleCustomer  Role = "Customer"
	RoleAdmin     Role = "Admin"
	RoleModerator Role = "Moderator"
)

// Status of a mock dashboard user
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

var (
	Roles    = []Role{RoleCustomer, RoleAdmin, RoleModerator}
	Statuses = []Status{StatusActive, StatusInactive}
)

// User is a process-local placeholder record; it has no backing store.
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}
