package service

import (
	"context"
	"fmt"

	"yatube/internal/repository"
)

type HealthService interface {
	Check(ctx context.Context) (int, error)
}

type healthService struct {
	tablesRepo repository.TablesRepository
}

func NewHealthService(tablesRepo repository.TablesRepository) HealthService {
	return &healthService{tablesRepo: tablesRepo}
}

// Check queries the database and returns the number of tables in the public
// schema.
func (h *healthService) Check(ctx context.Context) (int, error) {
	count, err := h.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, fmt.Errorf("база данных недоступна: %w", err)
	}
	return count, nil
}
