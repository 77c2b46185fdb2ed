// Package store persists curated resources, import drafts awaiting editor
// review, and an activity journal of export and import events, all in a
// single SQLite database file.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/gfz-metadata/mex/config"
	"github.com/gfz-metadata/mex/datacite"
	"github.com/gfz-metadata/mex/metadata"
)

// This error type is returned when a resource is not found in the store.
type NotFoundError struct {
	Id int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Resource %d not found", e.Id)
}

// This error type is returned when an import draft is not found in the store.
type DraftNotFoundError struct {
	Id uuid.UUID
}

func (e DraftNotFoundError) Error() string {
	return fmt.Sprintf("Import draft %s not found", e.Id.String())
}

// A ResourceEntry is a listing row: the resource's id, DOI, and the time it
// was last saved.
type ResourceEntry struct {
	Id       int       `json:"id"`
	Doi      string    `json:"doi,omitempty"`
	Modified time.Time `json:"modified"`
}

// An Event is one entry in the activity journal.
type Event struct {
	Id         uuid.UUID `json:"id"`
	Occurred   time.Time `json:"occurred"`
	Type       string    `json:"type"`
	ResourceId int       `json:"resource_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

// journal event types
const (
	EventSaved    = "saved"
	EventExported = "exported"
	EventImported = "imported"
)

const schema = `
CREATE TABLE IF NOT EXISTS resources (
	id INTEGER PRIMARY KEY,
	doi TEXT,
	modified TEXT NOT NULL,
	record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS drafts (
	id TEXT PRIMARY KEY,
	created TEXT NOT NULL,
	record TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	occurred TEXT NOT NULL,
	event_type TEXT NOT NULL,
	resource_id INTEGER,
	detail TEXT
);
`

// A Store wraps a pool of connections to the service's SQLite database.
type Store struct {
	pool *sqlitex.Pool
}

// NewStore opens (creating if necessary) the database file named by the
// store section of the service configuration, inside the service data
// directory.
func NewStore() (*Store, error) {
	path := filepath.Join(config.Service.DataDirectory, config.Store.File)
	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{PoolSize: 4})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	store := &Store{pool: pool}
	if err := store.initSchema(); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (store *Store) initSchema() error {
	conn, err := store.pool.Take(context.Background())
	if err != nil {
		return err
	}
	defer store.pool.Put(conn)
	return sqlitex.ExecuteScript(conn, schema, nil)
}

// Close releases the store's database connections.
func (store *Store) Close() error {
	return store.pool.Close()
}

// SaveResource stores a curated resource snapshot under the given id,
// replacing any previous snapshot (the store keeps at most one active record
// per id). The save is journaled.
func (store *Store) SaveResource(ctx context.Context, id int,
	resource *metadata.Resource) error {

	record, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("encoding resource %d: %w", id, err)
	}

	conn, err := store.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer store.pool.Put(conn)

	release := sqlitex.Save(conn)
	defer release(&err)

	err = sqlitex.Execute(conn, "DELETE FROM resources WHERE id = ?",
		&sqlitex.ExecOptions{Args: []any{id}})
	if err != nil {
		return err
	}
	err = sqlitex.Execute(conn,
		"INSERT INTO resources (id, doi, modified, record) VALUES (?, ?, ?, ?)",
		&sqlitex.ExecOptions{Args: []any{
			id, resource.Doi, time.Now().UTC().Format(time.RFC3339), string(record),
		}})
	if err != nil {
		return err
	}
	// assign through err so the savepoint rolls back on a journal failure
	err = store.journal(conn, EventSaved, id, resource.Doi)
	return err
}

// Resource fetches the resource stored under the given id.
func (store *Store) Resource(ctx context.Context, id int) (*metadata.Resource, error) {
	conn, err := store.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer store.pool.Put(conn)

	var record string
	err = sqlitex.Execute(conn, "SELECT record FROM resources WHERE id = ?",
		&sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				record = stmt.ColumnText(0)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if record == "" {
		return nil, NotFoundError{Id: id}
	}

	var resource metadata.Resource
	if err := json.Unmarshal([]byte(record), &resource); err != nil {
		return nil, fmt.Errorf("decoding resource %d: %w", id, err)
	}
	resource.Id = int64(id)
	return &resource, nil
}

// Resources lists all stored resources in id order.
func (store *Store) Resources(ctx context.Context) ([]ResourceEntry, error) {
	conn, err := store.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer store.pool.Put(conn)

	var entries []ResourceEntry
	err = sqlitex.Execute(conn,
		"SELECT id, doi, modified FROM resources ORDER BY id",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				modified, err := time.Parse(time.RFC3339, stmt.ColumnText(2))
				if err != nil {
					return err
				}
				entries = append(entries, ResourceEntry{
					Id:       stmt.ColumnInt(0),
					Doi:      stmt.ColumnText(1),
					Modified: modified,
				})
				return nil
			},
		})
	return entries, err
}

// SaveDraft stores an imported record as a draft awaiting editor review,
// returning the draft's assigned id. The import is journaled.
func (store *Store) SaveDraft(ctx context.Context,
	record *datacite.Record) (uuid.UUID, error) {

	id := uuid.New()
	encoded, err := json.Marshal(record)
	if err != nil {
		return id, fmt.Errorf("encoding draft: %w", err)
	}

	conn, err := store.pool.Take(ctx)
	if err != nil {
		return id, err
	}
	defer store.pool.Put(conn)

	release := sqlitex.Save(conn)
	defer release(&err)

	err = sqlitex.Execute(conn,
		"INSERT INTO drafts (id, created, record) VALUES (?, ?, ?)",
		&sqlitex.ExecOptions{Args: []any{
			id.String(), time.Now().UTC().Format(time.RFC3339), string(encoded),
		}})
	if err != nil {
		return id, err
	}
	var doi string
	if record.Doi != nil {
		doi = *record.Doi
	}
	// assign through err so the savepoint rolls back on a journal failure
	err = store.journal(conn, EventImported, 0, doi)
	return id, err
}

// Draft fetches an import draft by its id.
func (store *Store) Draft(ctx context.Context, id uuid.UUID) (*datacite.Record, error) {
	conn, err := store.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer store.pool.Put(conn)

	var encoded string
	err = sqlitex.Execute(conn, "SELECT record FROM drafts WHERE id = ?",
		&sqlitex.ExecOptions{
			Args: []any{id.String()},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				encoded = stmt.ColumnText(0)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	if encoded == "" {
		return nil, DraftNotFoundError{Id: id}
	}

	var record datacite.Record
	if err := json.Unmarshal([]byte(encoded), &record); err != nil {
		return nil, fmt.Errorf("decoding draft %s: %w", id.String(), err)
	}
	return &record, nil
}

// LogExport journals an export of the given resource.
func (store *Store) LogExport(ctx context.Context, id int, format string) error {
	conn, err := store.pool.Take(ctx)
	if err != nil {
		return err
	}
	defer store.pool.Put(conn)
	return store.journal(conn, EventExported, id, format)
}

// Events lists the activity journal, most recent first.
func (store *Store) Events(ctx context.Context) ([]Event, error) {
	conn, err := store.pool.Take(ctx)
	if err != nil {
		return nil, err
	}
	defer store.pool.Put(conn)

	var events []Event
	err = sqlitex.Execute(conn,
		"SELECT id, occurred, event_type, resource_id, detail FROM events ORDER BY occurred DESC, id",
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				id, err := uuid.Parse(stmt.ColumnText(0))
				if err != nil {
					return err
				}
				occurred, err := time.Parse(time.RFC3339, stmt.ColumnText(1))
				if err != nil {
					return err
				}
				events = append(events, Event{
					Id:         id,
					Occurred:   occurred,
					Type:       stmt.ColumnText(2),
					ResourceId: stmt.ColumnInt(3),
					Detail:     stmt.ColumnText(4),
				})
				return nil
			},
		})
	return events, err
}

// journal appends an event to the activity journal on an already-held
// connection.
func (store *Store) journal(conn *sqlite.Conn, eventType string,
	resourceId int, detail string) error {

	return sqlitex.Execute(conn,
		"INSERT INTO events (id, occurred, event_type, resource_id, detail) VALUES (?, ?, ?, ?, ?)",
		&sqlitex.ExecOptions{Args: []any{
			uuid.New().String(), time.Now().UTC().Format(time.RFC3339),
			eventType, resourceId, detail,
		}})
}
