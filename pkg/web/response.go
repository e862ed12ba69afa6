// Package web defines common components for a web application.
package web

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string `json:"access_token,omitempty"`
	AccessTokenExpiresAt  string `json:"access_token_expires_at,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt string `json:"refresh_token_expires_at,omitempty"`
	Data                  any    `json:"data,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Data wraps the payload into json frinedly struct.
func Data(data any) Response {
	return Response{Data: data}
}

// BindingError wraps a request binding err, describing the first failed
// validation when there is one.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return Response{Error: GetErrorMsg(ve)}
	}

	return Error(err)
}

// GetErrorMsg returns a human readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	if len(ve) == 0 {
		return ""
	}

	fe := ve[0]

	switch fe.Tag() {
	case "required":
		return fe.Field() + " field is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "max":
		return fe.Field() + " must be less than " + fe.Param()
	case "numeric":
		return fe.Field() + " must contain digits only"
	case "alphanum":
		return fe.Field() + " must contain letters and digits only"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "money":
		return fe.Field() + " must be a positive amount with at most 2 decimal places"
	case "required_if":
		return fe.Field() + " field is required for this registration type"
	}

	return fe.Field() + " is invalid"
}
