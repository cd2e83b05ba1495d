package models

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the stored user record. It is never serialized to clients; use
// Response for that.
type User struct {
	Entity
	FullName       string `json:"fullName"`
	DateOfBirth    string `json:"dateOfBirth"`
	Email          string `json:"email"`
	PasswordHash   string `json:"password"`
	AccountEnabled bool   `json:"accountEnabled"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Role           string `json:"role"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// UserResponse is the client-facing view of a user. It has no password field.
type UserResponse struct {
	ID             string    `json:"id"`
	LogicalID      LogicalID `json:"logicalId,omitzero"`
	FullName       string    `json:"fullName"`
	DateOfBirth    string    `json:"dateOfBirth"`
	Email          string    `json:"email"`
	AccountEnabled bool      `json:"accountEnabled"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Role           string    `json:"role"`
	CreatedAt      string    `json:"createdAt,omitempty"`
}

// Response builds the client-facing view of u.
func (u User) Response() UserResponse {
	return UserResponse{
		ID:             u.ID,
		LogicalID:      u.LogicalID,
		FullName:       u.FullName,
		DateOfBirth:    u.DateOfBirth,
		Email:          u.Email,
		AccountEnabled: u.AccountEnabled,
		Phone:          u.Phone,
		Address:        u.Address,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
	}
}

// UserInput is the body of user create and update requests. Role is only
// honoured on update; new users always get RoleUser.
type UserInput struct {
	FullName       *string `json:"fullName,omitempty" validate:"omitempty,notblank"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty" validate:"omitempty,ddmmyy"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Password       *string `json:"password,omitempty" validate:"omitempty,trimmin=6"`
	AccountEnabled *bool   `json:"accountEnabled,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Address        *string `json:"address,omitempty"`
	Role           *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

// LoginRequest is the body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
