package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Slot is a named save history.
type Slot struct {
	ID         string
	Name       string
	CreatedSeq int64
	UpdatedSeq int64
	Saves      int
}

// Save is one stored blob.
type Save struct {
	ID       int64
	SlotID   string
	Seq      int64
	Checksum string
	Blob     string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSave(row rowScanner) (Save, error) {
	var sv Save
	if err := row.Scan(&sv.ID, &sv.SlotID, &sv.Seq, &sv.Checksum, &sv.Blob); err != nil {
		return Save{}, err
	}
	return sv, nil
}

// Slot returns the named slot.
func (s *Store) Slot(ctx context.Context, name string) (Slot, error) {
	var slot Slot
	err := s.db.QueryRowContext(ctx, `
		SELECT s.id, s.name, s.created_seq, s.updated_seq,
		       (SELECT COUNT(*) FROM saves v WHERE v.slot_id = s.id)
		FROM slots s
		WHERE s.name = ?
	`, strings.TrimSpace(name)).Scan(&slot.ID, &slot.Name, &slot.CreatedSeq, &slot.UpdatedSeq, &slot.Saves)
	if errors.Is(err, sql.ErrNoRows) {
		return Slot{}, fmt.Errorf("slot %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Slot{}, fmt.Errorf("query slot: %w", err)
	}
	return slot, nil
}

// ListSlots returns every slot in creation order.
// Returns an empty slice (not nil) when there are none.
func (s *Store) ListSlots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.created_seq, s.updated_seq,
		       (SELECT COUNT(*) FROM saves v WHERE v.slot_id = s.id)
		FROM slots s
		ORDER BY s.created_seq ASC, s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	slots := []Slot{}
	for rows.Next() {
		var slot Slot
		if err := rows.Scan(&slot.ID, &slot.Name, &slot.CreatedSeq, &slot.UpdatedSeq, &slot.Saves); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}
	return slots, nil
}

// LatestSave returns the most recent blob in the named slot.
func (s *Store) LatestSave(ctx context.Context, name string) (Save, error) {
	sv, err := scanSave(s.db.QueryRowContext(ctx, `
		SELECT v.id, v.slot_id, v.seq, v.checksum, v.blob
		FROM saves v JOIN slots s ON s.id = v.slot_id
		WHERE s.name = ?
		ORDER BY v.seq DESC, v.id DESC
		LIMIT 1
	`, strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return Save{}, fmt.Errorf("latest save in %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return Save{}, fmt.Errorf("query latest save: %w", err)
	}
	return sv, nil
}

// SaveHistory returns up to limit saves of the named slot, newest first.
// A limit of zero or less returns the whole history.
func (s *Store) SaveHistory(ctx context.Context, name string, limit int) ([]Save, error) {
	if _, err := s.Slot(ctx, name); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.slot_id, v.seq, v.checksum, v.blob
		FROM saves v JOIN slots s ON s.id = v.slot_id
		WHERE s.name = ?
		ORDER BY v.seq DESC, v.id DESC
		LIMIT ?
	`, strings.TrimSpace(name), limit)
	if err != nil {
		return nil, fmt.Errorf("query save history: %w", err)
	}
	defer rows.Close()

	saves := []Save{}
	for rows.Next() {
		sv, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan save: %w", err)
		}
		saves = append(saves, sv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saves: %w", err)
	}
	return saves, nil
}
