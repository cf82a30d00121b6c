package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
	"github.com/iudanet/caresync/internal/server/storage"
	"github.com/iudanet/caresync/pkg/api"
)

const (
	// writeWait время на запись одного сообщения в websocket
	writeWait = 10 * time.Second
	// pongWait клиент должен ответить на ping за это время
	pongWait = 60 * time.Second
	// pingPeriod должен быть меньше pongWait
	pingPeriod = pongWait * 9 / 10
)

//go:generate moq -out notifier_mock.go . Notifier

// Notifier рассылка уведомлений подписчикам учетной записи
type Notifier interface {
	Subscribe(userID string) (<-chan api.Notification, func())
	Publish(userID string, n api.Notification)
}

// RevisionsHandler журнал ревизий: pull, push и подписка на изменения
type RevisionsHandler struct {
	logger   *slog.Logger
	storage  storage.RevisionStorage
	notifier Notifier
	upgrader websocket.Upgrader
}

// NewRevisionsHandler creates a new revisions handler
func NewRevisionsHandler(logger *slog.Logger, revisions storage.RevisionStorage, notifier Notifier) *RevisionsHandler {
	return &RevisionsHandler{
		logger:   logger,
		storage:  revisions,
		notifier: notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Pull обрабатывает POST /api/v1/revisions/pull.
// Возвращает ревизии, которые не строго доминируются вектором устройства, и вектор сервера.
func (h *RevisionsHandler) Pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID not found in context")
		sendError(h.logger, w, api.ErrorUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PullRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(h.logger, w, api.ErrorBadRequest, err.Error(), http.StatusBadRequest)
		return
	}
	if req.KnowledgeVector == nil {
		req.KnowledgeVector = crdt.NewKnowledgeVector(nil)
	}

	// вектор читается до ревизий, иначе он может покрыть ревизию, которой нет в ответе
	knowledge, err := h.storage.Knowledge(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get knowledge", "user_id", userID, "error", err)
		sendError(h.logger, w, api.ErrorInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	stored, err := h.storage.RevisionsSince(ctx, userID, req.KnowledgeVector)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to get revisions", "user_id", userID, "error", err)
		sendError(h.logger, w, api.ErrorInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.PullResponse{
		KnowledgeVector: knowledge,
		Revisions:       make([]api.EncryptedRevision, 0, len(stored)),
	}
	for _, rev := range stored {
		resp.Revisions = append(resp.Revisions, api.EncryptedRevision{
			KnowledgeVector: rev.KnowledgeVector,
			EncryptedData:   rev.EncryptedData,
		})
	}

	h.logger.InfoContext(ctx, "Revisions pulled",
		"user_id", userID,
		"since", req.KnowledgeVector.String(),
		"revisions", len(resp.Revisions))

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Push обрабатывает POST /api/v1/revisions/push.
// 409 с кодом stale_knowledge, если устройство не видело последнюю ревизию журнала.
func (h *RevisionsHandler) Push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "User ID not found in context")
		sendError(h.logger, w, api.ErrorUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendError(h.logger, w, api.ErrorBadRequest, err.Error(), http.StatusBadRequest)
		return
	}

	revisions, err := validatePush(req)
	if err != nil {
		h.logger.WarnContext(ctx, "Invalid push request", "user_id", userID, "error", err)
		sendError(h.logger, w, api.ErrorBadRequest, err.Error(), http.StatusBadRequest)
		return
	}

	knowledge, err := h.storage.AppendRevisions(ctx, userID, req.DeviceID, req.DeviceKnowledge, revisions)
	if err != nil {
		if errors.Is(err, storage.ErrStaleKnowledge) {
			h.logger.InfoContext(ctx, "Push rejected",
				"user_id", userID,
				"device_id", req.DeviceID,
				"device_knowledge", req.DeviceKnowledge.String())
			sendError(h.logger, w, api.ErrorStaleKnowledge, "pull new revisions before pushing", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to append revisions", "user_id", userID, "error", err)
		sendError(h.logger, w, api.ErrorInternal, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "Revisions pushed",
		"user_id", userID,
		"device_id", req.DeviceID,
		"revisions", len(revisions),
		"knowledge", knowledge.String())

	if len(revisions) > 0 {
		h.notifier.Publish(userID, api.Notification{
			Type:            api.NotificationRevisionsAvailable,
			KnowledgeVector: knowledge,
			Origin:          req.DeviceID,
		})
	}

	sendJSON(h.logger, w, api.PushResponse{KnowledgeVector: knowledge}, http.StatusOK)
}

// validatePush проверяет запрос и переводит ревизии в модель хранилища
func validatePush(req api.PushRequest) ([]*models.StoredRevision, error) {
	if _, err := uuid.Parse(req.DeviceID); err != nil {
		return nil, fmt.Errorf("device_id must be a uuid: %w", err)
	}
	if len(req.DeviceKnowledge) == 0 {
		return nil, errors.New("device_knowledge is required")
	}

	revisions := make([]*models.StoredRevision, 0, len(req.Revisions))
	for i, rev := range req.Revisions {
		if rev.EncryptedData == "" {
			return nil, fmt.Errorf("revision %d: encrypted_data is required", i)
		}
		if len(rev.KnowledgeVector) == 0 {
			return nil, fmt.Errorf("revision %d: knowledge_vector is required", i)
		}
		// ревизия не может знать больше своего устройства
		if !req.DeviceKnowledge.Dominates(rev.KnowledgeVector) {
			return nil, fmt.Errorf("revision %d: knowledge_vector %s exceeds device_knowledge", i, rev.KnowledgeVector)
		}
		revisions = append(revisions, &models.StoredRevision{
			KnowledgeVector: rev.KnowledgeVector,
			EncryptedData:   rev.EncryptedData,
		})
	}
	return revisions, nil
}

// Watch обрабатывает GET /api/v1/revisions/watch.
// После upgrade сервер отправляет api.Notification при каждом принятом push учетной записи.
func (h *RevisionsHandler) Watch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, api.ErrorUnauthorized, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.logger.WarnContext(ctx, "Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	notifications, cancel := h.notifier.Subscribe(userID)
	defer cancel()

	h.logger.InfoContext(ctx, "Watcher connected", "user_id", userID)

	// чтение нужно только для control-сообщений и обнаружения закрытия
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			h.logger.InfoContext(ctx, "Watcher disconnected", "user_id", userID)
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"), time.Now().Add(writeWait))
			return
		case n, ok := <-notifications:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(n); err != nil {
				h.logger.WarnContext(ctx, "Failed to send notification", "user_id", userID, "error", err)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
