package cache

import "github.com/google/uuid"

// TenantPrefix is the key prefix shared by all cached reports of one tenant.
// The sync job invalidates by this prefix after every successful run.
func TenantPrefix(tenantID uuid.UUID) string {
	return tenantID.String() + ":"
}

// ReportKey builds the cache key for one named report of a tenant
func ReportKey(tenantID uuid.UUID, name string) string {
	return TenantPrefix(tenantID) + name
}
