package history

import (
	"context"

	"dbconnectorapi/models"
	"dbconnectorapi/repository"
)

type repositoryStore struct {
	repo repository.QueryHistoryRepository
}

// NewRepositoryStore keeps history in the metadata store.
func NewRepositoryStore(repo repository.QueryHistoryRepository) Store {
	return &repositoryStore{repo: repo}
}

func (s *repositoryStore) Append(_ context.Context, e Entry) error {
	return s.repo.Create(nil, &models.QueryHistory{
		PoolName:     e.PoolName,
		QueryText:    e.QueryText,
		ExecutedAt:   e.ExecutedAt,
		Success:      e.Success,
		ErrorMessage: e.ErrorMessage,
		RowCount:     e.RowCount,
	})
}

func (s *repositoryStore) Recent(_ context.Context, pool string, limit int) ([]View, error) {
	rows, err := s.repo.ListRecent(nil, pool, limit)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(rows))
	for _, r := range rows {
		views = append(views, View{
			ID: r.ID,
			Entry: Entry{
				PoolName:     r.PoolName,
				QueryText:    r.QueryText,
				ExecutedAt:   r.ExecutedAt,
				Success:      r.Success,
				RowCount:     r.RowCount,
				ErrorMessage: r.ErrorMessage,
			},
			Kind: r.DBKind,
			Host: r.Host,
		})
	}
	return views, nil
}
