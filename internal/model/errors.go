package model

import "fmt"

// ConfigError reports an invalid initialization: an unknown start step, a
// malformed catalog entry, or a schema mismatch. It is fatal at startup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// IndexError reports a position outside the current bounds of a list.
// Callers treat it as a no-op.
type IndexError struct {
	Pos int
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("position %d out of range [0, %d)", e.Pos, e.Len)
}
