package uuidx

import "github.com/google/uuid"

// TempPrefix marks identifiers that were generated locally and have not been
// assigned by a backing store yet.
const TempPrefix = "tmp_"

// New generates a new UUID using the version 7 format and returns it.
// It panics if the UUID generation fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString generates a new UUID using the version 7 format and returns it as a string.
func NewString() string {
	return New().String()
}

// NewTempID returns a process-unique identifier for an entity that does not
// have a persistent id yet.
func NewTempID() string {
	return TempPrefix + NewString()
}

// IsTempID reports whether id was produced by NewTempID.
func IsTempID(id string) bool {
	if len(id) != len(TempPrefix)+36 || id[:len(TempPrefix)] != TempPrefix {
		return false
	}
	_, err := uuid.Parse(id[len(TempPrefix):])
	return err == nil
}
