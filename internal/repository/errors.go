// Package repository provides data access to the registrations and
// app_settings tables. Sentinel errors let handlers distinguish failure
// modes without inspecting driver errors: ErrRegistrationNotFound maps
// to HTTP 404 and ErrValidation to HTTP 400; everything else is an
// internal error.
package repository

import "errors"

// ErrRegistrationNotFound is returned when an id resolves to no row.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrValidation is returned (wrapped with a field hint) when required
// registration input is missing or empty after trimming.
var ErrValidation = errors.New("invalid registration input")
