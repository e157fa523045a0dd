package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/hoard/internal/game/encounter"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
)

// RecordKind tags what a ledger record holds.
type RecordKind string

const (
	KindLoot      RecordKind = "loot"
	KindEncounter RecordKind = "encounter"
)

// ValidKind reports whether kind is a recognised record kind.
func ValidKind(kind RecordKind) bool {
	return kind == KindLoot || kind == KindEncounter
}

// MaxListLimit caps ListRecent.
const MaxListLimit = 500

// ErrHoardNotFound is returned when a ledger lookup yields no results.
var ErrHoardNotFound = errors.New("hoard record not found")

// ErrInvalidKind is returned when an unrecognised record kind is supplied.
var ErrInvalidKind = errors.New("invalid record kind")

// Record is one stored generation result. Code is the treasure type for loot
// and the environment for encounters; Payload is the JSON of the result.
type Record struct {
	ID        uuid.UUID
	Kind      RecordKind
	Code      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// Hoard decodes a loot record.
//
// Precondition: rec.Kind == KindLoot.
func (rec Record) Hoard() (treasure.Hoard, error) {
	if rec.Kind != KindLoot {
		return treasure.Hoard{}, fmt.Errorf("record %s is %s, not loot", rec.ID, rec.Kind)
	}
	var h treasure.Hoard
	if err := json.Unmarshal(rec.Payload, &h); err != nil {
		return treasure.Hoard{}, fmt.Errorf("decoding hoard %s: %w", rec.ID, err)
	}
	return h, nil
}

// Encounter decodes an encounter record.
//
// Precondition: rec.Kind == KindEncounter.
func (rec Record) Encounter() (encounter.Encounter, error) {
	if rec.Kind != KindEncounter {
		return encounter.Encounter{}, fmt.Errorf("record %s is %s, not encounter", rec.ID, rec.Kind)
	}
	var e encounter.Encounter
	if err := json.Unmarshal(rec.Payload, &e); err != nil {
		return encounter.Encounter{}, fmt.Errorf("decoding encounter %s: %w", rec.ID, err)
	}
	return e, nil
}

// HoardRepository is the ledger of generated hoards and encounters.
type HoardRepository struct {
	db *pgxpool.Pool
}

// NewHoardRepository creates a HoardRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewHoardRepository(db *pgxpool.Pool) *HoardRepository {
	return &HoardRepository{db: db}
}

// SaveHoard records an appraised hoard.
//
// Postcondition: Returns the stored Record with ID and CreatedAt set.
func (r *HoardRepository) SaveHoard(ctx context.Context, h treasure.Hoard) (Record, error) {
	return r.save(ctx, KindLoot, h.Type, h)
}

// SaveEncounter records an encounter result, including no-encounter results.
//
// Postcondition: Returns the stored Record with ID and CreatedAt set.
func (r *HoardRepository) SaveEncounter(ctx context.Context, env encounter.Environment, e encounter.Encounter) (Record, error) {
	return r.save(ctx, KindEncounter, string(env), e)
}

func (r *HoardRepository) save(ctx context.Context, kind RecordKind, code string, payload any) (Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Record{}, fmt.Errorf("encoding %s payload: %w", kind, err)
	}

	rec := Record{ID: uuid.New(), Kind: kind, Code: code, Payload: data}
	err = r.db.QueryRow(ctx,
		`INSERT INTO hoards (id, kind, code, payload)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		rec.ID, string(rec.Kind), rec.Code, []byte(rec.Payload),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return Record{}, fmt.Errorf("inserting %s record: %w", kind, err)
	}
	return rec, nil
}

// Get retrieves a record by ID.
//
// Postcondition: Returns the Record or ErrHoardNotFound.
func (r *HoardRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, kind, code, payload, created_at
		 FROM hoards WHERE id = $1`,
		id,
	)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrHoardNotFound
		}
		return Record{}, fmt.Errorf("querying hoard %s: %w", id, err)
	}
	return rec, nil
}

// ListRecent returns up to limit records of kind, newest first.
//
// Precondition: kind is valid; 1 <= limit <= MaxListLimit.
func (r *HoardRepository) ListRecent(ctx context.Context, kind RecordKind, limit int) ([]Record, error) {
	if !ValidKind(kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("limit must be 1-%d, got %d", MaxListLimit, limit)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, kind, code, payload, created_at
		 FROM hoards WHERE kind = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2`,
		string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing %s records: %w", kind, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s record: %w", kind, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing %s records: %w", kind, err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec     Record
		kind    string
		payload []byte
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Code, &payload, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	rec.Kind = RecordKind(kind)
	rec.Payload = payload
	return rec, nil
}
