// Package models defines the core domain models for SplitEase.
//
// A Group is an ordered collection of Members plus the Expenses they share.
// Every expense is paid by one member and split equally among a subset of
// the group's members. Balances and Transfers are derived values: they are
// recomputed on demand from the current expense history and never persisted.
//
// Members are referenced by opaque string ids (UUID format). Relationships
// use id strings rather than pointers to avoid circular references and to
// keep the models storage-friendly.
package models
