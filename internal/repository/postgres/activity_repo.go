package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmalet/blog-backend/internal/models"
)

type activityRepo struct{ pool *pgxpool.Pool }

func (r *activityRepo) Create(ctx context.Context, rec models.ActivityRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_log(entity_type, entity_id, action, details) VALUES($1,$2,$3,$4)`,
		rec.EntityType, rec.EntityID, rec.Action, rec.Details,
	)
	return err
}
