package service

import (
	"context"

	"github.com/BloggingApp/world-service/internal/model"
	"github.com/BloggingApp/world-service/internal/repository"
	"github.com/BloggingApp/world-service/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type World interface {
	Create(ctx context.Context) (uuid.UUID, error)
	CreateUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID) (world.Result, error)
	EditUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID, changes world.Changes) (world.Result, error)
	CreatePost(ctx context.Context, worldID uuid.UUID, postID int64, authorID uuid.UUID) (world.Result, error)
	EditPost(ctx context.Context, worldID uuid.UUID, postID int64, changes world.Changes) (world.Result, error)
	ReviewUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID, moderatorID uuid.UUID) (world.Result, error)
	ViewPost(ctx context.Context, worldID uuid.UUID, viewerID *uuid.UUID, postID int64) (world.Decision, error)
	Undo(ctx context.Context, worldID uuid.UUID) error
	Redo(ctx context.Context, worldID uuid.UUID) error
	State(ctx context.Context, worldID uuid.UUID) (*world.State, error)
	RefreshSnapshots(ctx context.Context)
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Service struct {
	World
	UserCache
}

func New(logger *zap.Logger, repo *repository.Repository) *Service {
	return &Service{
		World: newWorldService(logger, repo),
		UserCache: newUserCacheService(logger, repo),
	}
}
