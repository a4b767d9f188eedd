package postgres

import (
	"context"

	"github.com/BloggingApp/world-service/internal/model"
	"github.com/BloggingApp/world-service/internal/world"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Event interface {
	CreateBatch(ctx context.Context, worldID uuid.UUID, startSeq int, batch int, events []world.Event) error
	FindByWorld(ctx context.Context, worldID uuid.UUID) ([]world.Event, []int, error)
	DeleteFrom(ctx context.Context, worldID uuid.UUID, fromSeq int) error
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type PostgresRepository struct {
	Event
	UserCache
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Event: newEventRepo(db),
		UserCache: newUserCacheRepo(db),
	}
}
