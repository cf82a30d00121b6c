package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
	"github.com/iudanet/caresync/internal/server/storage"
)

// querier общий набор методов *sql.DB и *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// AppendRevisions добавляет ревизии в журнал пользователя в одной транзакции
func (s *Storage) AppendRevisions(
	ctx context.Context,
	userID, deviceID string,
	deviceKnowledge crdt.KnowledgeVector,
	revisions []*models.StoredRevision,
) (crdt.KnowledgeVector, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	last, err := lastRevisionKnowledge(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	// ревизии устройства должны быть основаны на всем журнале
	if last != nil && !last.Less(deviceKnowledge) {
		return nil, fmt.Errorf("%w: last revision %s, device %s", storage.ErrStaleKnowledge, last, deviceKnowledge)
	}

	knowledge, err := accountKnowledge(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, rev := range revisions {
		kv, err := json.Marshal(rev.KnowledgeVector)
		if err != nil {
			return nil, fmt.Errorf("failed to encode knowledge vector: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO revisions (user_id, device_id, knowledge_vector, encrypted_data, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, userID, deviceID, string(kv), rev.EncryptedData, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert revision: %w", err)
		}

		seq, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get revision seq: %w", err)
		}

		rev.Seq = seq
		rev.UserID = userID
		rev.DeviceID = deviceID
		rev.CreatedAt = now
		knowledge.Merge(rev.KnowledgeVector)
	}
	knowledge.Merge(deviceKnowledge)

	kv, err := json.Marshal(knowledge)
	if err != nil {
		return nil, fmt.Errorf("failed to encode knowledge vector: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO knowledge (user_id, knowledge_vector, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			knowledge_vector = excluded.knowledge_vector,
			updated_at = excluded.updated_at
	`, userID, string(kv), now)
	if err != nil {
		return nil, fmt.Errorf("failed to save knowledge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return knowledge, nil
}

// RevisionsSince возвращает ревизии, которые since еще не покрывает полностью
func (s *Storage) RevisionsSince(ctx context.Context, userID string, since crdt.KnowledgeVector) ([]*models.StoredRevision, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, device_id, knowledge_vector, encrypted_data, created_at
		FROM revisions
		WHERE user_id = ?
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	result := make([]*models.StoredRevision, 0)
	for rows.Next() {
		rev := &models.StoredRevision{UserID: userID}
		var kv string
		if err := rows.Scan(&rev.Seq, &rev.DeviceID, &kv, &rev.EncryptedData, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		if err := json.Unmarshal([]byte(kv), &rev.KnowledgeVector); err != nil {
			return nil, fmt.Errorf("revision %d: %w", rev.Seq, err)
		}

		// векторы не сравнимы средствами SQL, фильтруем после чтения
		if rev.KnowledgeVector.Less(since) {
			continue
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate revisions: %w", err)
	}

	return result, nil
}

// Knowledge возвращает вектор знаний учетной записи
func (s *Storage) Knowledge(ctx context.Context, userID string) (crdt.KnowledgeVector, error) {
	return accountKnowledge(ctx, s.db, userID)
}

func accountKnowledge(ctx context.Context, q querier, userID string) (crdt.KnowledgeVector, error) {
	var kv string
	err := q.QueryRowContext(ctx, `SELECT knowledge_vector FROM knowledge WHERE user_id = ?`, userID).Scan(&kv)
	if errors.Is(err, sql.ErrNoRows) {
		return crdt.NewKnowledgeVector(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge: %w", err)
	}

	knowledge := crdt.NewKnowledgeVector(nil)
	if err := json.Unmarshal([]byte(kv), &knowledge); err != nil {
		return nil, err
	}
	return knowledge, nil
}

// lastRevisionKnowledge вектор последней ревизии журнала, nil для пустого журнала
func lastRevisionKnowledge(ctx context.Context, q querier, userID string) (crdt.KnowledgeVector, error) {
	var kv string
	err := q.QueryRowContext(ctx, `
		SELECT knowledge_vector FROM revisions WHERE user_id = ? ORDER BY seq DESC LIMIT 1
	`, userID).Scan(&kv)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last revision: %w", err)
	}

	var last crdt.KnowledgeVector
	if err := json.Unmarshal([]byte(kv), &last); err != nil {
		return nil, fmt.Errorf("last revision: %w", err)
	}
	return last, nil
}
