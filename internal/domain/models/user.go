package models

import "time"

// Role is the access level attached to a user or guest session.
type Role string

const (
	RoleFarmer       Role = "farmer"
	RoleParavet      Role = "paravet"
	RoleVeterinarian Role = "veterinarian"
	RoleAdmin        Role = "admin"
	RoleGuest        Role = "guest"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleParavet, RoleVeterinarian, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// User is a registered account.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Phone        string    `bson:"phone" json:"phone"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	Village      string    `bson:"village,omitempty" json:"village,omitempty"`
	District     string    `bson:"district,omitempty" json:"district,omitempty"`
	State        string    `bson:"state,omitempty" json:"state,omitempty"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
	IsLocked     bool      `bson:"is_locked" json:"is_locked"`
	LockReason   string    `bson:"lock_reason,omitempty" json:"lock_reason,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Role  Role   `json:"role"`
	Guest bool   `json:"guest"`
}

// SeesAllRecords reports whether the caller reads records beyond their own.
func (p Principal) SeesAllRecords() bool {
	switch p.Role {
	case RoleVeterinarian, RoleAdmin, RoleParavet:
		return true
	}
	return false
}

// HasRole reports whether the caller holds one of roles.
func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required"`
	Village  string `json:"village"`
	District string `json:"district"`
	State    string `json:"state"`
}

// LoginRequest authenticates by phone, password and the role the client expects.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
}

// TokenResponse is returned by register, login and guest-session.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user,omitempty"`
	GuestID     string    `json:"guest_id,omitempty"`
}

// UserFilter narrows admin user listings.
type UserFilter struct {
	Role   Role
	Status string // active, inactive or empty
	Search string
}
