package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/idlecore/internal/codec"
)

// CreateSlot registers a new empty slot.
func (s *Store) CreateSlot(ctx context.Context, name string) (Slot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Slot{}, fmt.Errorf("create slot: empty name")
	}

	var slot Slot
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots WHERE name = ?`, name).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return fmt.Errorf("%w: %s", ErrSlotExists, name)
		}

		seq, err := nextSeq(ctx, tx)
		if err != nil {
			return err
		}
		slot = Slot{ID: s.ids.Generate(), Name: name, CreatedSeq: seq, UpdatedSeq: seq}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slots (id, name, created_seq, updated_seq)
			VALUES (?, ?, ?, ?)
		`, slot.ID, slot.Name, slot.CreatedSeq, slot.UpdatedSeq)
		return err
	})
	if err != nil {
		return Slot{}, fmt.Errorf("create slot: %w", err)
	}
	return slot, nil
}

// WriteSave appends blob to the named slot's history, creating the slot if
// needed. Writing the same blob as the slot's latest save is a no-op that
// returns the existing record. Surrounding whitespace is not stored.
func (s *Store) WriteSave(ctx context.Context, name, blob string) (Save, error) {
	blob = strings.TrimSpace(blob)
	if _, err := codec.Decode(blob); err != nil {
		return Save{}, fmt.Errorf("write save: %w: %v", ErrInvalidBlob, err)
	}
	checksum, err := codec.Checksum(blob)
	if err != nil {
		return Save{}, fmt.Errorf("write save: %w: %v", ErrInvalidBlob, err)
	}

	if _, err := s.Slot(ctx, name); errors.Is(err, ErrNotFound) {
		if _, err := s.CreateSlot(ctx, name); err != nil {
			return Save{}, fmt.Errorf("write save: %w", err)
		}
	} else if err != nil {
		return Save{}, fmt.Errorf("write save: %w", err)
	}

	var save Save
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var slotID string
		if err := tx.QueryRowContext(ctx, `SELECT id FROM slots WHERE name = ?`, strings.TrimSpace(name)).Scan(&slotID); err != nil {
			return err
		}

		latest, err := scanSave(tx.QueryRowContext(ctx, `
			SELECT id, slot_id, seq, checksum, blob FROM saves
			WHERE slot_id = ?
			ORDER BY seq DESC, id DESC
			LIMIT 1
		`, slotID))
		switch {
		case err == nil && latest.Checksum == checksum && latest.Blob == blob:
			save = latest
			return nil
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			return err
		}

		seq, err := nextSeq(ctx, tx)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO saves (slot_id, seq, checksum, blob)
			VALUES (?, ?, ?, ?)
		`, slotID, seq, checksum, blob)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE slots SET updated_seq = ? WHERE id = ?`, seq, slotID); err != nil {
			return err
		}
		save = Save{ID: id, SlotID: slotID, Seq: seq, Checksum: checksum, Blob: blob}
		return nil
	})
	if err != nil {
		return Save{}, fmt.Errorf("write save: %w", err)
	}
	return save, nil
}

// DeleteSlot removes a slot and its whole history.
func (s *Store) DeleteSlot(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete slot %s: %w", name, ErrNotFound)
	}
	return nil
}

// nextSeq returns the next store-wide logical sequence number.
func nextSeq(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx, `
		SELECT MAX(
			COALESCE((SELECT MAX(updated_seq) FROM slots), 0),
			COALESCE((SELECT MAX(seq) FROM saves), 0)
		) + 1
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
