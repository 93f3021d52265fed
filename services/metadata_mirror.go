package services

import (
	"context"
	"time"

	"dbconnectorapi/models"
	"dbconnectorapi/repository"
	"dbconnectorapi/services/pool"
)

// metadataMirror copies registered connection summaries into the metadata store.
type metadataMirror struct {
	repo repository.ConnectionMetadataRepository
}

// NewMetadataMirror adapts the metadata repository to the registry's mirror contract.
func NewMetadataMirror(repo repository.ConnectionMetadataRepository) pool.Mirror {
	return &metadataMirror{repo: repo}
}

func (m *metadataMirror) Save(_ context.Context, s pool.Summary) error {
	return m.repo.Upsert(nil, &models.ConnectionMetadata{
		PoolName:   s.PoolName,
		DBKind:     string(s.Kind),
		Host:       s.Host,
		Username:   s.Username,
		Status:     string(s.Status),
		LastUsedAt: s.LastUsedAt,
	})
}

func (m *metadataMirror) Touch(_ context.Context, poolName string, at time.Time) error {
	return m.repo.TouchLastUsed(nil, poolName, at)
}
