package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BloggingApp/world-service/internal/world"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type eventRepo struct {
	db *pgxpool.Pool
}

func newEventRepo(db *pgxpool.Pool) Event {
	return &eventRepo{
		db: db,
	}
}

// CreateBatch inserts one command's events in a single transaction. The
// batch column preserves undo boundaries across restarts; seq preserves
// replay order.
func (r *eventRepo) CreateBatch(ctx context.Context, worldID uuid.UUID, startSeq int, batch int, events []world.Event) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, event := range events {
		var changes []byte
		if event.Changes != nil {
			changes, err = json.Marshal(event.Changes)
			if err != nil {
				return err
			}
		}

		if _, err := tx.Exec(
			ctx,
			`INSERT INTO world_events(world_id, seq, batch, type, user_id, post_id, author_id, author_is_unreviewed, changes, created_at)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			worldID,
			startSeq+i,
			batch,
			string(event.Type),
			nullableID(event.UserID),
			event.PostID,
			nullableID(event.AuthorID),
			event.AuthorIsUnreviewed,
			changes,
			event.Timestamp,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *eventRepo) FindByWorld(ctx context.Context, worldID uuid.UUID) ([]world.Event, []int, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT e.seq, e.batch, e.type, e.user_id, e.post_id, e.author_id, e.author_is_unreviewed, e.changes, e.created_at
		FROM world_events e
		WHERE e.world_id = $1
		ORDER BY e.seq`,
		worldID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var (
		events    []world.Event
		batches   []int
		lastBatch = -1
	)
	for rows.Next() {
		var (
			seq                int
			batch              int
			eventType          string
			userID             *uuid.UUID
			postID             int64
			authorID           *uuid.UUID
			authorIsUnreviewed bool
			changes            []byte
			createdAt          time.Time
		)
		if err := rows.Scan(
			&seq,
			&batch,
			&eventType,
			&userID,
			&postID,
			&authorID,
			&authorIsUnreviewed,
			&changes,
			&createdAt,
		); err != nil {
			return nil, nil, err
		}

		parsedType, err := world.ParseEventType(eventType)
		if err != nil {
			return nil, nil, err
		}

		event := world.Event{
			Type:               parsedType,
			PostID:             postID,
			AuthorIsUnreviewed: authorIsUnreviewed,
			Timestamp:          createdAt,
		}
		if userID != nil {
			event.UserID = *userID
		}
		if authorID != nil {
			event.AuthorID = *authorID
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &event.Changes); err != nil {
				return nil, nil, err
			}
		}
		events = append(events, event)

		if batch != lastBatch {
			batches = append(batches, 0)
			lastBatch = batch
		}
		batches[len(batches)-1]++
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return events, batches, nil
}

func (r *eventRepo) DeleteFrom(ctx context.Context, worldID uuid.UUID, fromSeq int) error {
	_, err := r.db.Exec(ctx, "DELETE FROM world_events WHERE world_id = $1 AND seq >= $2", worldID, fromSeq)
	return err
}

func nullableID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
