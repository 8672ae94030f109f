// Package storage defines the on-disk media store for aircraft photos and
// maintenance documents.
package storage

import "github.com/aerologix/aerologix/internal/models"

// Provider is the interface for aircraft media operations. Files are
// addressed by (aircraft id, plain filename); nesting is not allowed.
type Provider interface {
	// List returns metadata for every file stored for an aircraft.
	List(aircraftID string) ([]models.MediaInfo, error)
	// Read returns the raw bytes of one stored file.
	Read(aircraftID, name string) ([]byte, error)
	// Write atomically stores content under the aircraft's directory.
	Write(aircraftID, name string, content []byte) error
	// Delete removes one stored file.
	Delete(aircraftID, name string) error
	// DeleteAll removes every file of an aircraft (owner delete cascade).
	DeleteAll(aircraftID string) error
	// Path returns the absolute on-disk path of a stored file, for serving.
	Path(aircraftID, name string) (string, error)
}
