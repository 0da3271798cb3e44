package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenExpired               = errors.New("token has expired")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrEmailAlreadyExists         = errors.New("email is already registered")
	ErrUserNotFound               = errors.New("user not found")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrGoogleAccessDeniedByUser   = errors.New("google access denied by user")
	ErrStateCookieEmpty           = errors.New("state cookie is empty")
	ErrStateParamEmpty            = errors.New("state parameter is empty")
	ErrStateMismatch              = errors.New("state parameter does not match state cookie")
	ErrCodeValueEmpty             = errors.New("authorization code is empty")
)
