// Package storage archives generated export files in object storage.
package storage

import "context"

// ArtifactStore persists generated export artifacts (CSV and PDF files) so
// board members can fetch past reports without regenerating them.
type ArtifactStore interface {
	// Put stores an artifact and returns its storage key.
	Put(ctx context.Context, tenantSlug, filename string, data []byte, contentType string) (string, error)
}
