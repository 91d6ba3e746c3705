package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/sharezin/internal/models"
	"github.com/mmynk/sharezin/internal/storage"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CreateReceipt persists a new receipt to the database.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, r *models.Receipt) error {
	// Generate IDs if not set
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	if r.Version == 0 {
		r.Version = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO receipts (id, title, date, creator_id, invite_code, service_charge_percent,
		 cover, total, is_closed, version, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Date, r.CreatorID, r.InviteCode, r.ServiceChargePercent,
		r.Cover, r.Total, boolToInt(r.IsClosed), r.Version, r.CreatedAt,
	)
	if isUniqueViolation(err, "receipts.invite_code") {
		return storage.ErrInviteCodeTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	if err := insertChildren(ctx, tx, r); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveReceipt writes the snapshot back if nobody saved the receipt in between.
func (s *SQLiteStore) SaveReceipt(ctx context.Context, r *models.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE receipts SET title = ?, date = ?, creator_id = ?, service_charge_percent = ?,
		 cover = ?, total = ?, is_closed = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		r.Title, r.Date, r.CreatorID, r.ServiceChargePercent,
		r.Cover, r.Total, boolToInt(r.IsClosed),
		r.ID, r.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if n == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM receipts WHERE id = ?", r.ID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("receipt %s: %w", r.ID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check receipt existence: %w", err)
		}
		return fmt.Errorf("receipt %s: %w", r.ID, storage.ErrStaleReceipt)
	}

	// Children are replaced wholesale; requests first, they reference items.
	for _, table := range []string{"deletion_requests", "items", "pending_participants", "participants"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE receipt_id = ?", r.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertChildren(ctx, tx, r); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.Version++
	return nil
}

func insertChildren(ctx context.Context, tx execer, r *models.Receipt) error {
	for i := range r.Participants {
		p := &r.Participants[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO participants (id, receipt_id, position, name, group_id, user_id, is_closed)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, r.ID, i, p.Name, p.GroupID, p.UserID, boolToInt(p.IsClosed),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range r.Items {
		item := &r.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (id, receipt_id, position, name, quantity, price, participant_id, added_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, r.ID, i, item.Name, item.Quantity, item.Price, item.ParticipantID, item.AddedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	for _, p := range r.PendingParticipants {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO pending_participants (id, receipt_id, name, user_id, requested_at)
			 VALUES (?, ?, ?, ?, ?)`,
			p.ID, r.ID, p.Name, p.UserID, p.RequestedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert pending participant: %w", err)
		}
	}

	for _, dr := range r.DeletionRequests {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO deletion_requests (id, receipt_id, item_id, participant_id, requested_at)
			 VALUES (?, ?, ?, ?, ?)`,
			dr.ID, r.ID, dr.ItemID, dr.ParticipantID, dr.RequestedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert deletion request: %w", err)
		}
	}

	return nil
}

const receiptColumns = `id, title, date, creator_id, invite_code, service_charge_percent,
	cover, total, is_closed, version, created_at`

func scanReceipt(row *sql.Row) (*models.Receipt, error) {
	r := &models.Receipt{}
	var closed int
	err := row.Scan(&r.ID, &r.Title, &r.Date, &r.CreatorID, &r.InviteCode, &r.ServiceChargePercent,
		&r.Cover, &r.Total, &closed, &r.Version, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.IsClosed = closed != 0
	return r, nil
}

// GetReceipt retrieves a receipt by ID, including all of its children.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	r, err := scanReceipt(s.db.QueryRowContext(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE id = ?", receiptID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("receipt %s: %w", receiptID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	if err := s.loadChildren(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetReceiptByInviteCode retrieves a receipt by its invite code.
func (s *SQLiteStore) GetReceiptByInviteCode(ctx context.Context, code string) (*models.Receipt, error) {
	r, err := scanReceipt(s.db.QueryRowContext(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE invite_code = ?", code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invite code %s: %w", code, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt by invite code: %w", err)
	}
	if err := s.loadChildren(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, r *models.Receipt) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, group_id, user_id, is_closed FROM participants
		 WHERE receipt_id = ? ORDER BY position`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p models.Participant
		var closed int
		if err := rows.Scan(&p.ID, &p.Name, &p.GroupID, &p.UserID, &closed); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.IsClosed = closed != 0
		r.Participants = append(r.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, quantity, price, participant_id, added_at FROM items
		 WHERE receipt_id = ? ORDER BY position`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var item models.ReceiptItem
		var addedAt int64
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Price, &item.ParticipantID, &addedAt); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		item.AddedAt = time.Unix(0, addedAt)
		r.Items = append(r.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	pendingRows, err := s.db.QueryContext(ctx,
		`SELECT id, name, user_id, requested_at FROM pending_participants
		 WHERE receipt_id = ? ORDER BY requested_at, id`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get pending participants: %w", err)
	}
	defer pendingRows.Close()
	for pendingRows.Next() {
		var p models.PendingParticipant
		var requestedAt int64
		if err := pendingRows.Scan(&p.ID, &p.Name, &p.UserID, &requestedAt); err != nil {
			return fmt.Errorf("failed to scan pending participant: %w", err)
		}
		p.RequestedAt = time.Unix(0, requestedAt)
		r.PendingParticipants = append(r.PendingParticipants, p)
	}
	if err := pendingRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate pending participants: %w", err)
	}

	requestRows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, participant_id, requested_at FROM deletion_requests
		 WHERE receipt_id = ? ORDER BY requested_at, id`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to get deletion requests: %w", err)
	}
	defer requestRows.Close()
	for requestRows.Next() {
		var dr models.DeletionRequest
		var requestedAt int64
		if err := requestRows.Scan(&dr.ID, &dr.ItemID, &dr.ParticipantID, &requestedAt); err != nil {
			return fmt.Errorf("failed to scan deletion request: %w", err)
		}
		dr.RequestedAt = time.Unix(0, requestedAt)
		r.DeletionRequests = append(r.DeletionRequests, dr)
	}
	if err := requestRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate deletion requests: %w", err)
	}

	return nil
}

// ListReceiptsForUser retrieves receipts the user created or participates in.
func (s *SQLiteStore) ListReceiptsForUser(ctx context.Context, userID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT r.id, r.created_at FROM receipts r
		 LEFT JOIN participants p ON p.receipt_id = r.id
		 WHERE r.creator_id = ? OR p.user_id = ?
		 ORDER BY r.created_at DESC, r.id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		var createdAt int64
		if err := rows.Scan(&id, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan receipt id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	receipts := make([]*models.Receipt, 0, len(ids))
	for _, id := range ids {
		r, err := s.GetReceipt(ctx, id)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, r)
	}
	return receipts, nil
}

// CountOpenReceiptsByCreator counts the user's open receipts.
func (s *SQLiteStore) CountOpenReceiptsByCreator(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM receipts WHERE creator_id = ? AND is_closed = 0", userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}
	return count, nil
}
