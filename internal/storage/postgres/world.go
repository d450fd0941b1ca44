package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ErrWorldNotFound is returned when no world is stored under a name.
var ErrWorldNotFound = errors.New("world not found")

// WorldRepository stores world records. Worlds are written whole and read
// whole; there are no partial updates.
type WorldRepository struct {
	db *pgxpool.Pool
}

// NewWorldRepository creates a WorldRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewWorldRepository(db *pgxpool.Pool) *WorldRepository {
	return &WorldRepository{db: db}
}

// ReplaceData stores d under d.Name, replacing any world of the same name.
//
// Precondition: d.Name must be non-empty.
// Postcondition: the stored world equals d, or nothing changed and an error
// is returned.
func (r *WorldRepository) ReplaceData(ctx context.Context, d *world.Data) error {
	if d.Name == "" {
		return errors.New("replacing world: name must not be empty")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM worlds WHERE name = $1`, d.Name); err != nil {
		return fmt.Errorf("deleting world %q: %w", d.Name, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO worlds (name, start_room) VALUES ($1, $2)`,
		d.Name, d.StartRoom,
	); err != nil {
		return fmt.Errorf("inserting world %q: %w", d.Name, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"world_rooms"},
		[]string{"world", "id", "name", "description", "sound", "exits"},
		pgx.CopyFromSlice(len(d.Rooms), func(i int) ([]any, error) {
			rm := d.Rooms[i]
			exits := make([]int32, len(rm.Exits))
			for j, target := range rm.Exits {
				exits[j] = int32(target)
			}
			return []any{d.Name, rm.ID, rm.Name, rm.Description, rm.Sound, exits}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copying rooms of %q: %w", d.Name, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"world_items"},
		[]string{"world", "position", "item_id", "location", "keyword", "name", "description",
			"portable", "hidden", "action", "destination", "actions"},
		pgx.CopyFromSlice(len(d.Items), func(i int) ([]any, error) {
			it := d.Items[i]
			actions, err := encodeActions(it.Actions)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", it.Keyword, err)
			}
			return []any{d.Name, i, it.ID, it.Location, it.Keyword, it.Name, it.Description,
				it.Portable, it.Hidden, it.Action, it.Destination, actions}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copying items of %q: %w", d.Name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing world %q: %w", d.Name, err)
	}
	return nil
}

// LoadData reads the world stored under name. Rooms come back ordered by ID
// and items in the order they were stored.
//
// Postcondition: Returns the records, or an error wrapping ErrWorldNotFound.
func (r *WorldRepository) LoadData(ctx context.Context, name string) (*world.Data, error) {
	d := &world.Data{Name: name}
	err := r.db.QueryRow(ctx, `SELECT start_room FROM worlds WHERE name = $1`, name).Scan(&d.StartRoom)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading world %q: %w", name, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, sound, exits
		 FROM world_rooms WHERE world = $1 ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("querying rooms of %q: %w", name, err)
	}
	d.Rooms, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (world.RoomRecord, error) {
		var rec world.RoomRecord
		var exits []int32
		if err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.Sound, &exits); err != nil {
			return rec, err
		}
		if len(exits) != len(rec.Exits) {
			return rec, fmt.Errorf("room %d: want %d exit slots, got %d", rec.ID, len(rec.Exits), len(exits))
		}
		for i, target := range exits {
			rec.Exits[i] = int(target)
		}
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading rooms of %q: %w", name, err)
	}

	rows, err = r.db.Query(ctx,
		`SELECT item_id, location, keyword, name, description, portable, hidden, action, destination, actions
		 FROM world_items WHERE world = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("querying items of %q: %w", name, err)
	}
	d.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (world.ItemRecord, error) {
		var rec world.ItemRecord
		var actions []byte
		if err := row.Scan(&rec.ID, &rec.Location, &rec.Keyword, &rec.Name, &rec.Description,
			&rec.Portable, &rec.Hidden, &rec.Action, &rec.Destination, &actions); err != nil {
			return rec, err
		}
		var err error
		rec.Actions, err = decodeActions(actions)
		if err != nil {
			return rec, fmt.Errorf("item %q: %w", rec.Keyword, err)
		}
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading items of %q: %w", name, err)
	}
	return d, nil
}

// encodeActions renders actions as the JSON array stored in world_items.actions.
// No actions is stored as [].
func encodeActions(actions []world.ActionRecord) ([]byte, error) {
	if len(actions) == 0 {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("encoding actions: %w", err)
	}
	return b, nil
}

// decodeActions is the inverse of encodeActions. An empty array decodes to nil.
func decodeActions(raw []byte) ([]world.ActionRecord, error) {
	var actions []world.ActionRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &actions); err != nil {
			return nil, fmt.Errorf("decoding actions: %w", err)
		}
	}
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

// ListNames returns the names of all stored worlds in alphabetical order.
func (r *WorldRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM worlds ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing worlds: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("listing worlds: %w", err)
	}
	return names, nil
}

// Delete removes the world stored under name.
//
// Postcondition: Returns an error wrapping ErrWorldNotFound when nothing was deleted.
func (r *WorldRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM worlds WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting world %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrWorldNotFound, name)
	}
	return nil
}
