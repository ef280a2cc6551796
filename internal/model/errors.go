package model

import "errors"

// ErrTokenNotFound is returned by token stores when a user has no stored
// calendar credential.
var ErrTokenNotFound = errors.New("calendar token not found")
