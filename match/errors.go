// SPDX-License-Identifier: MIT
// Package match: sentinel errors for the MatchMaker.
package match

import "errors"

var (
	// ErrSchema is returned when a required join-key or time-stamp column
	// is missing from the population or peripheral table (spec §4.1).
	ErrSchema = errors.New("match: schema error")

	// ErrRoleMismatch indicates the named column exists but does not carry
	// the role MatchMaker requires of it (join-key or time-stamp).
	ErrRoleMismatch = errors.New("match: column role mismatch")
)
