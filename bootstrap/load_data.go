package bootstrap

import (
	"fmt"

	"dbconnectorapi/pkg/logger"
	"dbconnectorapi/repository"
	"dbconnectorapi/services/backend"
)

// UnsupportedSaved stores saved pool names whose backend kind is no longer supported, mapped to that kind.
// Only earlier runs can leave such rows; registration accepts supported kinds only.
var UnsupportedSaved map[string]string

// IsUnsupportedSaved reports whether the saved pool was stored with a kind this build does not support.
func IsUnsupportedSaved(poolName string) bool {
	_, ok := UnsupportedSaved[poolName]
	return ok
}

// LoadData reports backend library availability and, when metaRepo is not nil,
// loads the saved connection metadata.
func LoadData(backends *backend.Registry, metaRepo repository.ConnectionMetadataRepository) error {
	logger.Infof("Starting bootstrap data loading...")

	logBackends(backends)

	if metaRepo == nil {
		logger.Infof("Metadata store disabled, no saved connections to load")
		UnsupportedSaved = map[string]string{}
		return nil
	}
	if err := loadSavedConnections(metaRepo); err != nil {
		return err
	}

	logger.Infof("Bootstrap data loading completed successfully")
	return nil
}

func logBackends(backends *backend.Registry) {
	for _, tmpl := range backends.All() {
		if tmpl.LibraryAvailable {
			logger.Infof("Backend %s: native client available", tmpl.Kind)
		} else {
			logger.Warnf("Backend %s: native client not compiled in", tmpl.Kind)
		}
	}
}

func loadSavedConnections(repo repository.ConnectionMetadataRepository) error {
	saved, err := repo.List(nil)
	if err != nil {
		logger.Errorf("Failed to load saved connections: %v", err)
		return fmt.Errorf("failed to load saved connections: %w", err)
	}

	unsupported := make(map[string]string)
	for _, meta := range saved {
		if _, err := backend.ParseKind(meta.DBKind); err != nil {
			unsupported[meta.PoolName] = meta.DBKind
			logger.Warnf("Saved connection %s has unsupported backend %q", meta.PoolName, meta.DBKind)
		}
	}
	UnsupportedSaved = unsupported
	logger.Infof("Loaded %d saved connection(s), %d unsupported", len(saved), len(unsupported))
	return nil
}
