// Package service implements the application services: group and expense
// management on top of the storage layer, balance/settlement queries on top
// of the ledger engine, and account registration/login.
package service

import "errors"

var (
	// ErrInvalidExpense is returned when an expense fails validation:
	// non-positive amount, empty involved set, or references to ids that
	// are not members of the group. Rejected before touching the store so
	// the ledger's zero-sum invariant can never be violated by the API.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidMember is returned when a member cannot be added, e.g. an
	// empty display name.
	ErrInvalidMember = errors.New("invalid member")

	// ErrForbidden is returned when a user operates on a group they do not own.
	ErrForbidden = errors.New("forbidden")
)
