package repository

import (
	"context"
	"fmt"
	"github.com/jmoiron/sqlx"
	"myblog/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountRecords(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats

	err := r.db.GetContext(ctx, &stats, `
			SELECT
				(SELECT COUNT(*) FROM users) AS users,
				(SELECT COUNT(*) FROM posts) AS posts,
				(SELECT COUNT(*) FROM comments) AS comments
		`)

	if err != nil {
		return nil, fmt.Errorf("%w: ошибка при подсчёте записей: %v", models.ErrStoreUnavailable, err)
	}

	return &stats, nil
}
