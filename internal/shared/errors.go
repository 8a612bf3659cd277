package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Backend errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrInvalidResponse    = fmt.Errorf("invalid response")
	ErrGenerationFailed   = fmt.Errorf("course generation failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Client state errors
	ErrNoResult      = fmt.Errorf("no generated course available")
	ErrNothingToSave = fmt.Errorf("nothing to download")
	ErrRenderFailed  = fmt.Errorf("slide rendering failed")
	ErrVideoFailed   = fmt.Errorf("video generation failed")
	ErrResultMissing = fmt.Errorf("result not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
