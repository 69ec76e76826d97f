package interfaces

import "mcvelo-cli/pkg/models"

// VersionCatalog lists the proxy builds available for download.
type VersionCatalog interface {
	// Fetch retrieves the catalog, newest version first. The returned slice
	// is never empty on success.
	Fetch() ([]models.VersionInfo, error)
}
