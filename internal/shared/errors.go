package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("catalog API key is not configured")

	// Catalog API errors
	ErrAPIRequest   = fmt.Errorf("API request failed")
	ErrRateLimited  = fmt.Errorf("API rate limit exceeded")
	ErrUnauthorized = fmt.Errorf("API key is invalid or expired")
	ErrConnectivity = fmt.Errorf("no response from server")

	// Account errors
	ErrUsernameTaken      = fmt.Errorf("username already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid username or password")
	ErrNotLoggedIn        = fmt.Errorf("no active user session")

	// Store errors
	ErrNotFound        = fmt.Errorf("not found")
	ErrDefaultPlaylist = fmt.Errorf("default playlists cannot be deleted")
	ErrStorage         = fmt.Errorf("storage operation failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
