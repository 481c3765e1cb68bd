package identity

import (
	"errors"
	"strings"
)

// ErrInvalidIdentity is returned when an account identity has no usable
// local part.
var ErrInvalidIdentity = errors.New("invalid account identity")

// Resolve derives the tenant key from an account identity: the part of the
// email before the first "@". The result is used verbatim as the assistant
// resource name — callers must not sanitize it further, or two call sites
// can end up addressing different resources for the same account.
//
// Two accounts sharing a local part collide onto the same tenant. That
// mirrors the upstream naming scheme (human-readable assistant names) and
// is kept as-is.
func Resolve(account string) (string, error) {
	local, _, _ := strings.Cut(account, "@")
	if local == "" {
		return "", ErrInvalidIdentity
	}
	return local, nil
}
