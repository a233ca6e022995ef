package dto

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account credential bounds shared by login and registration.
const (
	minPasswordLength = 6
	minUsernameLength = 3
	maxUsernameLength = 30
)

// LoginRequest is the JSON body for the login endpoint.
//
// @Description Request to authenticate a user
// @Example {"email": "dietitian@nutrihub.app", "password": "s3cure-pass"}
type LoginRequest struct {
	// Email is the account's email address.
	Email string `json:"email" binding:"required,email" example:"dietitian@nutrihub.app"`
	// Password is the account password.
	Password string `json:"password" binding:"required,min=6" example:"s3cure-pass"`
} // @name LoginRequest

// RegisterRequest is the JSON body for the register endpoint.
//
// @Description Request to create a new account
// @Example {"email": "dietitian@nutrihub.app", "username": "jreyes", "password": "s3cure-pass", "name": "Jordan Reyes"}
type RegisterRequest struct {
	// Email is the account's email address.
	Email string `json:"email" binding:"required,email" example:"dietitian@nutrihub.app"`
	// Username is the unique handle shown on shared meal plans.
	Username string `json:"username" binding:"required,min=3,max=30" example:"jreyes"`
	// Password is the account password (minimum 6 characters).
	Password string `json:"password" binding:"required,min=6" example:"s3cure-pass"`
	// Name is the account holder's display name (optional).
	Name string `json:"name,omitempty" example:"Jordan Reyes"`
} // @name RegisterRequest

// LoginResponse is the JSON body returned on successful authentication.
//
// @Description Successful authentication response with JWT tokens
// @Example {"token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "refresh_token": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...", "user": {"email": "dietitian@nutrihub.app", "name": "Jordan Reyes"}}
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// User describes the authenticated account.
	User UserResponse `json:"user"`
} // @name LoginResponse

// TokenPair carries an access/refresh token pair. It lives in dto rather
// than service so that handlers and middleware can share it without an
// import cycle.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims is the JWT claim set attached to every issued token.
type Claims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
	Roles  []string           `json:"roles"`
}

// UserResponse is the account summary embedded in API responses.
type UserResponse struct {
	// Email is the account's email address.
	Email string `json:"email" example:"dietitian@nutrihub.app"`
	// Name is the account holder's display name.
	Name string `json:"name,omitempty" example:"Jordan Reyes"`
} // @name UserResponse

// Validate checks the login request beyond what binding tags cover.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return requiredField("email")
	}
	return validatePassword(r.Password)
}

// Validate checks the register request beyond what binding tags cover.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return requiredField("email")
	}
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	return validatePassword(r.Password)
}

func requiredField(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength),
		}
	}
	return nil
}

func validateUsername(username string) error {
	switch {
	case username == "":
		return requiredField("username")
	case len(username) < minUsernameLength:
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be at least %d characters", minUsernameLength),
		}
	case len(username) > maxUsernameLength:
		return &ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username must be at most %d characters", maxUsernameLength),
		}
	}
	return nil
}
