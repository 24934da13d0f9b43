package config

import "errors"

// ErrInvalidConfig is returned by Load and Validate when an environment
// variable is set but malformed, or a required setting is missing.
var ErrInvalidConfig = errors.New("config: invalid configuration")
