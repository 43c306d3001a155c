package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	StatusActive      UserStatus = "active"
	StatusInvited     UserStatus = "invited"
	StatusDeactivated UserStatus = "deactivated"
)

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         UserRole   `json:"role" gorm:"not null;default:'admin'"`
	Status       UserStatus `json:"status" gorm:"not null;default:'active'"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserSession binds a user to the currently valid refresh token for one
// device. RefreshToken is null only inside the create-session window; every
// observable session carries exactly one valid token.
type UserSession struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	User         *User     `json:"-" gorm:"foreignKey:UserID"`
	RefreshToken *string   `json:"-"`
	IPAddress    string    `json:"ipAddress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Principal is the minimal identity attached to authenticated requests.
type Principal struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Role      UserRole
}
