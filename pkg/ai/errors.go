package ai

import "errors"

// ErrEmptyCompletion is returned when the provider sends no choices
var ErrEmptyCompletion = errors.New("empty completion response")
