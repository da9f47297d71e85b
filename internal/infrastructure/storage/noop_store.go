package storage

import "context"

var _ ArtifactStore = (*NoopArtifactStore)(nil)

// NoopArtifactStore discards artifacts. Used when no bucket is configured;
// exports are then only returned inline over HTTP.
type NoopArtifactStore struct{}

// NewNoopArtifactStore creates a no-op store
func NewNoopArtifactStore() *NoopArtifactStore {
	return &NoopArtifactStore{}
}

// Put returns the would-be key without storing anything
func (s *NoopArtifactStore) Put(_ context.Context, tenantSlug, filename string, _ []byte, _ string) (string, error) {
	return tenantSlug + "/" + filename, nil
}
