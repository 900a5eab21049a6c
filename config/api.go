package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only storefront lookups stay public
	return []string{"/health", "/api/realtime/availability"}
}
