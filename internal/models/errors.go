package models

import "errors"

// User-visible pipeline outcomes. None of these leave any state behind.
var (
	ErrEmptyInput    = errors.New("input is empty")
	ErrNoIdentifiers = errors.New("no 11-digit or 15-digit identifiers found")
	ErrNoSequential  = errors.New("no sequential identifiers found")
)

// Contract-violation errors. These indicate an upstream bug: the offending
// identifier is logged and skipped, never surfaced to the end user.
var (
	ErrInvalidIdentifier   = errors.New("identifier length is not 11 or 15")
	ErrDuplicateIdentifier = errors.New("identifier already recorded for user")
)

// ErrStorageUnavailable is returned when the durable blob store cannot be
// read or written. The triggering operation aborts without partial writes.
var ErrStorageUnavailable = errors.New("storage unavailable")
