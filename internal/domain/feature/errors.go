package feature

import "errors"

var ErrFeatureNotFound = errors.New("feature not found")
