package service

import (
	"context"
	"sync"
	"time"

	"github.com/BloggingApp/world-service/internal/repository"
	"github.com/BloggingApp/world-service/internal/repository/redisrepo"
	"github.com/BloggingApp/world-service/internal/world"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// worldService hosts world instances. The core itself is single-threaded
// by contract, so every Execute/Undo/Redo goes through one mutex; reads
// re-derive from the instance the same way and share the lock for
// simplicity.
type worldService struct {
	logger *zap.Logger
	repo *repository.Repository

	mu sync.Mutex
	worlds map[uuid.UUID]*world.World
}

func newWorldService(logger *zap.Logger, repo *repository.Repository) World {
	return &worldService{
		logger: logger,
		repo: repo,
		worlds: make(map[uuid.UUID]*world.World),
	}
}

func (s *worldService) Create(ctx context.Context) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.worlds[id] = world.NewWorld()
	return id, nil
}

// getWorld returns the in-memory instance, loading the persisted log on
// first access after a restart. Caller must hold s.mu.
func (s *worldService) getWorld(ctx context.Context, worldID uuid.UUID) (*world.World, error) {
	if w, exists := s.worlds[worldID]; exists {
		return w, nil
	}

	events, batches, err := s.repo.Postgres.Event.FindByWorld(ctx, worldID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to load world(%s) events: %s", worldID.String(), err.Error())
		return nil, ErrInternal
	}
	if len(events) == 0 {
		return nil, ErrWorldNotFound
	}

	w := world.LoadWorld(events, batches)
	s.worlds[worldID] = w
	return w, nil
}

// apply runs one command against the world's current state and, when the
// command is accepted, persists its batch before advancing the in-memory
// log. A rejected result is returned untouched for the handler to surface.
func (s *worldService) apply(ctx context.Context, worldID uuid.UUID, command func(world.State) world.Result) (world.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWorld(ctx, worldID)
	if err != nil {
		return world.Result{}, err
	}

	result := command(w.CurrentState())
	if !result.OK {
		return result, nil
	}

	if err := s.repo.Postgres.Event.CreateBatch(ctx, worldID, w.LogLen(), w.BatchCount(), result.Events); err != nil {
		s.logger.Sugar().Errorf("failed to append world(%s) event batch: %s", worldID.String(), err.Error())
		return world.Result{}, ErrInternal
	}

	w.Execute(result)
	s.invalidateSnapshot(ctx, worldID)
	return result, nil
}

func (s *worldService) CreateUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID) (world.Result, error) {
	return s.apply(ctx, worldID, func(state world.State) world.Result {
		return world.CreateUser(userID, state)
	})
}

func (s *worldService) EditUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID, changes world.Changes) (world.Result, error) {
	return s.apply(ctx, worldID, func(state world.State) world.Result {
		return world.EditUser(userID, changes, state)
	})
}

func (s *worldService) CreatePost(ctx context.Context, worldID uuid.UUID, postID int64, authorID uuid.UUID) (world.Result, error) {
	return s.apply(ctx, worldID, func(state world.State) world.Result {
		return world.CreatePost(postID, authorID, state)
	})
}

func (s *worldService) EditPost(ctx context.Context, worldID uuid.UUID, postID int64, changes world.Changes) (world.Result, error) {
	return s.apply(ctx, worldID, func(state world.State) world.Result {
		return world.EditPost(postID, changes, state)
	})
}

func (s *worldService) ReviewUser(ctx context.Context, worldID uuid.UUID, userID uuid.UUID, moderatorID uuid.UUID) (world.Result, error) {
	return s.apply(ctx, worldID, func(state world.State) world.Result {
		return world.ReviewUser(userID, moderatorID, state)
	})
}

func (s *worldService) ViewPost(ctx context.Context, worldID uuid.UUID, viewerID *uuid.UUID, postID int64) (world.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWorld(ctx, worldID)
	if err != nil {
		return world.Decision{}, err
	}

	return world.ViewPost(viewerID, postID, w.CurrentState()), nil
}

func (s *worldService) Undo(ctx context.Context, worldID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWorld(ctx, worldID)
	if err != nil {
		return err
	}
	if !w.CanUndo() {
		return nil
	}

	w.Undo()
	if err := s.repo.Postgres.Event.DeleteFrom(ctx, worldID, w.LogLen()); err != nil {
		s.logger.Sugar().Errorf("failed to trim world(%s) events after undo: %s", worldID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateSnapshot(ctx, worldID)
	return nil
}

func (s *worldService) Redo(ctx context.Context, worldID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWorld(ctx, worldID)
	if err != nil {
		return err
	}
	if !w.CanRedo() {
		return nil
	}

	startSeq, batch := w.LogLen(), w.BatchCount()
	w.Redo()
	if err := s.repo.Postgres.Event.CreateBatch(ctx, worldID, startSeq, batch, w.Log()[startSeq:]); err != nil {
		s.logger.Sugar().Errorf("failed to persist world(%s) redo batch: %s", worldID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateSnapshot(ctx, worldID)
	return nil
}

func (s *worldService) State(ctx context.Context, worldID uuid.UUID) (*world.State, error) {
	cached, err := redisrepo.Get[world.State](s.repo.Redis.Default, ctx, redisrepo.WorldStateKey(worldID.String()))
	if err == nil && cached != nil {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, err := s.getWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}

	state := w.CurrentState()
	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.WorldStateKey(worldID.String()), state, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set world(%s) snapshot in redis: %s", worldID.String(), err.Error())
	}

	return &state, nil
}

// RefreshSnapshots re-derives and re-caches every loaded world. Runs from
// the cron scheduler.
func (s *worldService) RefreshSnapshots(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range s.worlds {
		if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.WorldStateKey(id.String()), w.CurrentState(), time.Hour); err != nil {
			s.logger.Sugar().Errorf("failed to refresh world(%s) snapshot in redis: %s", id.String(), err.Error())
		}
	}
}

func (s *worldService) invalidateSnapshot(ctx context.Context, worldID uuid.UUID) {
	if err := s.repo.Redis.Default.Del(ctx, redisrepo.WorldStateKey(worldID.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete world(%s) snapshot from redis: %s", worldID.String(), err.Error())
	}
}
