package authclient

import "time"

// Status is the application-level outcome of a login or signup call.
// A non-success status is a normal result, not an error: the caller
// decides how to surface it.
type Status string

const (
	StatusSuccess            Status = "SUCCESS"
	StatusInvalidCredentials Status = "INVALID_CREDENTIALS"
	StatusAlreadyExists      Status = "ALREADY_EXISTS"
	StatusError              Status = "ERROR"
)

// Profile carries the registration details for a new user.
type Profile struct {
	FiscalCode  string    `json:"fiscalCode"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
}

// LoginResponse is the auth service's answer to a login call. Tokens are
// only populated when Status is StatusSuccess.
type LoginResponse struct {
	Status       Status `json:"status"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SignUpResponse is the auth service's answer to a signup call.
// Registration does not log the user in; no tokens are returned.
type SignUpResponse struct {
	Status Status `json:"status"`
}

// RefreshResponse carries the rotated token pair. The server may omit a
// field; callers must leave the corresponding stored token untouched
// rather than blanking it.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type loginRequest struct {
	FiscalCode string `json:"fiscalCode"`
	Password   string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
