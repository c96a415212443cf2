package api

import "time"

// Request payloads. Validation tags mirror the domain constraints so bad
// input is rejected before any store call.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email           string `json:"email"           validate:"required,email"`
	FullName        string `json:"fullName"        validate:"required,min=2,max=100"`
	Password        string `json:"password"        validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID int64 `json:"userId"`

	// AccessToken authorizes API calls until ExpiresAt.
	AccessToken string `json:"token"`

	// RefreshToken obtains new token pairs after the access token expires.
	RefreshToken string `json:"refreshToken,omitempty"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires.
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}

// UserResponse is the caller's own profile as returned by the /me endpoint.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// CreateTeamRequest defines the payload for creating a team.
type CreateTeamRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// UpdateTeamRequest defines the payload for updating a team.
type UpdateTeamRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// AddMemberRequest defines the payload for enrolling a user in a team.
type AddMemberRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0"`
	Role   string `json:"role"   validate:"required,oneof=owner manager member"`
}

// UpdateMemberRoleRequest defines the payload for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner manager member"`
}

// CreateProjectRequest defines the payload for creating a project. The
// deadline, when present, must be in the future.
type CreateProjectRequest struct {
	Name        string     `json:"name"        validate:"required,min=2,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Deadline    *time.Time `json:"deadline"    validate:"omitempty,gt"`
}

// UpdateProjectRequest defines the payload for updating a project.
type UpdateProjectRequest struct {
	Name        string     `json:"name"        validate:"required,min=2,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=1000"`
	Deadline    *time.Time `json:"deadline"    validate:"omitempty,gt"`
}

// CreateTaskRequest defines the payload for creating a task. New tasks
// always start in the todo status; the due date, when present, must be in
// the future.
type CreateTaskRequest struct {
	Title            string     `json:"title"            validate:"required,min=2,max=200"`
	Description      *string    `json:"description"      validate:"omitempty,max=2000"`
	Priority         string     `json:"priority"         validate:"required,oneof=low medium high urgent"`
	DueDate          *time.Time `json:"dueDate"          validate:"omitempty,gt"`
	AssignedToUserID *int64     `json:"assignedToUserId" validate:"omitempty,gt=0"`
}

// UpdateTaskRequest defines the payload for updating a task's descriptive
// fields. Status and assignment change through their own endpoints.
type UpdateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=2,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    string     `json:"priority"    validate:"required,oneof=low medium high urgent"`
	DueDate     *time.Time `json:"dueDate"     validate:"omitempty,gt"`
}

// UpdateTaskStatusRequest defines the payload for the status transition
// endpoint.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo in_progress in_review done"`
}

// AssignTaskRequest defines the payload for assigning a task.
type AssignTaskRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
}
