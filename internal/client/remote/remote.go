// Package remote реализует sync.Remote поверх HTTP API сервера.
// Записи ревизий шифруются на устройстве, сервер видит только векторы знаний.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	clientapi "github.com/iudanet/caresync/internal/client/api"
	"github.com/iudanet/caresync/internal/client/store"
	"github.com/iudanet/caresync/internal/client/sync"
	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/crypto"
	"github.com/iudanet/caresync/internal/models"
	"github.com/iudanet/caresync/pkg/api"
)

//go:generate moq -out client_mock.go . RevisionClient

// RevisionClient subset of the HTTP client that talks to /revisions
type RevisionClient interface {
	PullRevisions(ctx context.Context, since crdt.KnowledgeVector) (*api.PullResponse, error)
	PushRevisions(ctx context.Context, req api.PushRequest) (*api.PushResponse, error)
	Watch(ctx context.Context, handler func(api.Notification)) error
}

// ErrCorruptRevision ревизию не удалось расшифровать или декодировать
var ErrCorruptRevision = errors.New("corrupt revision")

// HTTPRemote удаленная сторона синхронизации на сервере caresync
type HTTPRemote struct {
	client   RevisionClient
	cipher   *crypto.Cipher
	resolver store.ConflictResolver
	logger   *slog.Logger
	deviceID uuid.UUID
}

var _ sync.Remote = (*HTTPRemote)(nil)

// New создает HTTPRemote. encryptionKey деривирован из парольной фразы аккаунта,
// deviceID совпадает с ProcessID локального хранилища.
func New(client RevisionClient, encryptionKey []byte, deviceID uuid.UUID, resolver store.ConflictResolver, logger *slog.Logger) (*HTTPRemote, error) {
	c, err := crypto.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	return &HTTPRemote{
		client:   client,
		cipher:   c,
		resolver: resolver,
		logger:   logger,
		deviceID: deviceID,
	}, nil
}

func (r *HTTPRemote) PullRevisions(ctx context.Context, since crdt.KnowledgeVector, merge func(models.RevisionRecord) error) error {
	resp, err := r.client.PullRevisions(ctx, since)
	if err != nil {
		return err
	}

	r.logger.Debug("Pulled revisions", "count", len(resp.Revisions), "remote_knowledge", resp.KnowledgeVector.String())

	for i, enc := range resp.Revisions {
		rev, err := r.open(enc)
		if err != nil {
			return fmt.Errorf("revision %d: %w", i, err)
		}
		if err := merge(rev); err != nil {
			return err
		}
	}

	// catch-up ревизия переносит вектор сервера, даже если ревизий нет
	return merge(models.NewCatchUpRevision(resp.KnowledgeVector))
}

func (r *HTTPRemote) PushRevisions(ctx context.Context, revisions []models.RevisionRecord, deviceKnowledge crdt.KnowledgeVector) error {
	req := api.PushRequest{
		DeviceID:        r.deviceID.String(),
		DeviceKnowledge: deviceKnowledge,
		Revisions:       make([]api.EncryptedRevision, 0, len(revisions)),
	}
	for _, rev := range revisions {
		if rev.IsCatchUp() {
			continue
		}
		enc, err := r.seal(rev)
		if err != nil {
			return err
		}
		req.Revisions = append(req.Revisions, enc)
	}

	resp, err := r.client.PushRevisions(ctx, req)
	if err != nil {
		var httpErr *clientapi.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusConflict && httpErr.Code == api.ErrorStaleKnowledge {
			return fmt.Errorf("%w: %w", sync.ErrStaleKnowledge, err)
		}
		return err
	}

	r.logger.Debug("Pushed revisions", "count", len(req.Revisions), "remote_knowledge", resp.KnowledgeVector.String())
	return nil
}

func (r *HTTPRemote) ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error) {
	return r.resolver.ChooseConflictResolution(ctx, conflicts)
}

// Notifications подписывается на уведомления сервера и переподключается с экспоненциальной задержкой.
// Уведомления о собственных push отбрасываются. Канал закрывается после отмены ctx.
func (r *HTTPRemote) Notifications(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	own := r.deviceID.String()

	go func() {
		defer close(out)

		backoff := retry.WithCappedDuration(30*time.Second, retry.NewExponential(500*time.Millisecond))
		_ = retry.Do(ctx, backoff, func(ctx context.Context) error {
			err := r.client.Watch(ctx, func(n api.Notification) {
				if n.Type != api.NotificationRevisionsAvailable || n.Origin == own {
					return
				}
				select {
				case out <- struct{}{}:
				default: // синхронизация уже запрошена
				}
			})
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("Watch disconnected, reconnecting", "error", err)
			if err == nil {
				err = errors.New("watch closed by server")
			}
			return retry.RetryableError(err)
		})
	}()

	return out
}

// seal шифрует записи ревизии, вектор знаний привязывается как associated data
func (r *HTTPRemote) seal(rev models.RevisionRecord) (api.EncryptedRevision, error) {
	payload, err := json.Marshal(rev.Entities)
	if err != nil {
		return api.EncryptedRevision{}, fmt.Errorf("failed to encode revision: %w", err)
	}

	data, err := r.cipher.SealToBase64(payload, []byte(rev.KnowledgeVector.Key()))
	if err != nil {
		return api.EncryptedRevision{}, fmt.Errorf("failed to encrypt revision: %w", err)
	}

	return api.EncryptedRevision{
		KnowledgeVector: rev.KnowledgeVector,
		EncryptedData:   data,
	}, nil
}

func (r *HTTPRemote) open(enc api.EncryptedRevision) (models.RevisionRecord, error) {
	payload, err := r.cipher.OpenFromBase64(enc.EncryptedData, []byte(enc.KnowledgeVector.Key()))
	if err != nil {
		return models.RevisionRecord{}, fmt.Errorf("%w: %w", ErrCorruptRevision, err)
	}

	var entities []models.Entity
	if err := json.Unmarshal(payload, &entities); err != nil {
		return models.RevisionRecord{}, fmt.Errorf("%w: %w", ErrCorruptRevision, err)
	}

	return models.RevisionRecord{
		KnowledgeVector: enc.KnowledgeVector,
		Entities:        entities,
	}, nil
}
