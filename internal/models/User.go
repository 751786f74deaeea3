package models

// User roles. Role is fixed at creation; "client" doubles as tenant.
const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub_admin"
	RoleAgent    = "agent"
	RoleClient   = "client"
)

// Account lifecycle states. Deactivation is a state change, never a row delete.
const (
	StatusActive      = "active"
	StatusDeactivated = "deactivated"
	StatusSuspended   = "suspended"
)

type User struct {
	Base
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Role         string `json:"role" gorm:"index;not null"` // "admin", "sub_admin", "agent", "client"
	Status       string `json:"status" gorm:"index;default:active"`

	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"` // PRC license for agents
	CompanyName   string `json:"company_name"`

	Balance *Balance `json:"balance,omitempty" gorm:"foreignKey:UserID"`
}

// IsStaff reports whether the user holds a back-office role.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSubAdmin
}
