package db

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/typesxml/internal/typesxml"
)

// ErrSnapshotNotFound возвращается, если для label нет сохранённых snapshot.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot описывает одну сохранённую версию коллекции types.
type Snapshot struct {
	ID        int64
	Label     string
	Digest    string // blake2b-256 от compact XML, hex
	TypeCount int
	CreatedAt time.Time
}

// SnapshotRepository хранит коллекции types в PostgreSQL, одна строка на type.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository создаёт новый snapshot repository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Digest returns the content digest used to detect unchanged snapshots.
func Digest(types *typesxml.Types) (string, error) {
	data, err := types.Marshal()
	if err != nil {
		return "", fmt.Errorf("rendering types: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Save сохраняет types под label. Если последний snapshot этого label
// с тем же digest, он возвращается и ничего не пишется.
func (r *SnapshotRepository) Save(ctx context.Context, label string, types *typesxml.Types) (Snapshot, error) {
	digest, err := Digest(types)
	if err != nil {
		return Snapshot{}, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "label", label, "error", err)
		}
	}()

	latest, err := latestSnapshot(ctx, tx, label)
	switch {
	case err == nil && latest.Digest == digest:
		slog.Debug("snapshot unchanged", "label", label, "id", latest.ID)
		return latest, nil
	case err != nil && !errors.Is(err, ErrSnapshotNotFound):
		return Snapshot{}, err
	}

	snap := Snapshot{Label: label, Digest: digest, TypeCount: types.Len()}
	if err := tx.QueryRow(ctx,
		`INSERT INTO snapshots (label, digest, type_count)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		label, digest, snap.TypeCount,
	).Scan(&snap.ID, &snap.CreatedAt); err != nil {
		return Snapshot{}, fmt.Errorf("inserting snapshot %q: %w", label, err)
	}

	if err := insertTypes(ctx, tx, snap.ID, types); err != nil {
		return Snapshot{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("snapshot saved", "label", label, "id", snap.ID, "types", snap.TypeCount)
	return snap, nil
}

// Latest загружает последний snapshot для label.
func (r *SnapshotRepository) Latest(ctx context.Context, label string) (*typesxml.Types, Snapshot, error) {
	snap, err := latestSnapshot(ctx, r.pool, label)
	if err != nil {
		return nil, Snapshot{}, err
	}
	types, err := r.loadTypes(ctx, snap.ID)
	if err != nil {
		return nil, Snapshot{}, err
	}
	return types, snap, nil
}

// List возвращает все snapshot для label, новые первыми.
func (r *SnapshotRepository) List(ctx context.Context, label string) ([]Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, label, digest, type_count, created_at
		 FROM snapshots WHERE label = $1
		 ORDER BY id DESC`, label)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots %q: %w", label, err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Label, &s.Digest, &s.TypeCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshot rows: %w", err)
	}
	return out, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func latestSnapshot(ctx context.Context, q querier, label string) (Snapshot, error) {
	var s Snapshot
	err := q.QueryRow(ctx,
		`SELECT id, label, digest, type_count, created_at
		 FROM snapshots WHERE label = $1
		 ORDER BY id DESC LIMIT 1`, label,
	).Scan(&s.ID, &s.Label, &s.Digest, &s.TypeCount, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("querying snapshot %q: %w", label, err)
	}
	return s, nil
}

var typeColumns = []string{
	"snapshot_id", "position", "name",
	"nominal", "lifetime", "restock", "min", "quantmin", "quantmax", "cost",
	"count_in_cargo", "count_in_hoarder", "count_in_map", "count_in_player", "crafted", "deloot",
	"category", "usage_tags", "value_tags",
}

func insertTypes(ctx context.Context, tx pgx.Tx, snapshotID int64, types *typesxml.Types) error {
	all := types.All()
	if len(all) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(all))
	for i, t := range all {
		f := t.Flags()
		var category *string
		if c := t.Category(); c != nil {
			name := c.Name()
			category = &name
		}
		rows = append(rows, []any{
			snapshotID, i, t.Name(),
			widen[uint8, int16](t.Nominal()), int64(t.Lifetime()), widen[uint32, int64](t.Restock()),
			int16(t.Min()), t.Quantmin(), t.Quantmax(), widen[uint32, int64](t.Cost()),
			f.CountInCargo(), f.CountInHoarder(), f.CountInMap(), f.CountInPlayer(), f.Crafted(), f.Deloot(),
			category, tagNames(t.Usages()), tagNames(t.Values()),
		})
	}

	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"snapshot_types"},
		typeColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting types of snapshot %d: %w", snapshotID, err)
	}
	return nil
}

func (r *SnapshotRepository) loadTypes(ctx context.Context, snapshotID int64) (*typesxml.Types, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT name, nominal, lifetime, restock, min, quantmin, quantmax, cost,
		        count_in_cargo, count_in_hoarder, count_in_map, count_in_player, crafted, deloot,
		        category, usage_tags, value_tags
		 FROM snapshot_types WHERE snapshot_id = $1
		 ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("loading types of snapshot %d: %w", snapshotID, err)
	}
	defer rows.Close()

	types := typesxml.NewTypes()
	for rows.Next() {
		var (
			name              string
			nominal           *int16
			lifetime          int64
			restock           *int64
			min               int16
			quantmin          *int64
			quantmax          int64
			cost              *int64
			cargo, hoarder    bool
			onMap, player     bool
			crafted, deloot   bool
			category          *string
			usages, valueTags []string
		)
		if err := rows.Scan(&name, &nominal, &lifetime, &restock, &min, &quantmin, &quantmax, &cost,
			&cargo, &hoarder, &onMap, &player, &crafted, &deloot,
			&category, &usages, &valueTags); err != nil {
			return nil, fmt.Errorf("scanning type row: %w", err)
		}

		t := typesxml.NewType(name)
		t.SetNominal(widen[int16, uint8](nominal))
		t.SetLifetime(uint32(lifetime))
		t.SetRestock(widen[int64, uint32](restock))
		t.SetMin(uint8(min))
		t.SetQuantmin(quantmin)
		t.SetQuantmax(quantmax)
		t.SetCost(widen[int64, uint32](cost))
		t.SetFlags(flagsOf(cargo, hoarder, onMap, player, crafted, deloot))
		if category != nil {
			c := typesxml.NewNamed(*category)
			t.SetCategory(&c)
		}
		t.SetUsages(typesxml.NewNamedList(usages...))
		t.SetValues(typesxml.NewNamedList(valueTags...))
		types.Add(t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating type rows: %w", err)
	}
	return types, nil
}

func flagsOf(cargo, hoarder, onMap, player, crafted, deloot bool) typesxml.Flags {
	var f typesxml.Flags
	f.SetCountInCargo(cargo)
	f.SetCountInHoarder(hoarder)
	f.SetCountInMap(onMap)
	f.SetCountInPlayer(player)
	f.SetCrafted(crafted)
	f.SetDeloot(deloot)
	return f
}

// widen конвертирует optional integer между типом колонки и типом поля.
func widen[From, To ~int16 | ~int64 | ~uint8 | ~uint32](v *From) *To {
	if v == nil {
		return nil
	}
	out := To(*v)
	return &out
}

func tagNames(list []typesxml.Named) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Name()
	}
	return out
}
