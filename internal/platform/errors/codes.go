// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dice errors
	CodeInvalidNotation Code = "INVALID_NOTATION"

	// World errors
	CodeInvalidMove Code = "INVALID_MOVE"

	// Character errors
	CodeInvalidPatch       Code = "INVALID_PATCH"
	CodeCharacterEmptyName Code = "CHARACTER_EMPTY_NAME"

	// Storage errors
	CodeNotFound    Code = "NOT_FOUND"
	CodeDuplicateID Code = "DUPLICATE_ID"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"

	// Lore errors
	CodeLoreUnavailable Code = "LORE_UNAVAILABLE"
)
