package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/iudanet/caresync/internal/client/store"
	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// DefaultMaxPushAttempts сколько раз цикл повторяется после отказа push из-за устаревшего вектора
const DefaultMaxPushAttempts = 3

// Service определяет интерфейс для sync.Service
type Service interface {
	// Synchronize выполняет полный цикл: pull, merge, разрешение конфликтов, push
	Synchronize(ctx context.Context) (*Result, error)

	// State текущая стадия цикла
	State() State

	// Run синхронизирует хранилище по уведомлениям удаленной стороны, локальным изменениям
	// и по таймеру, пока не будет отменен ctx. Ошибки синхронизации только логируются.
	Run(ctx context.Context, notifications <-chan struct{}) error
}

// Config настройки синхронизации
type Config struct {
	MaxPushAttempts int           // попыток push при ErrStaleKnowledge, 0 означает DefaultMaxPushAttempts
	Interval        time.Duration // период автосинхронизации в Run, 0 отключает таймер
}

// service synchronizes one local store with a remote
type service struct {
	store  *store.Store
	remote Remote
	logger *slog.Logger
	cfg    Config
	state  atomic.Int32
}

// NewService creates a new sync service
func NewService(st *store.Store, remote Remote, cfg Config, logger *slog.Logger) Service {
	if cfg.MaxPushAttempts <= 0 {
		cfg.MaxPushAttempts = DefaultMaxPushAttempts
	}
	return &service{
		store:  st,
		remote: remote,
		logger: logger,
		cfg:    cfg,
	}
}

// Result результат цикла синхронизации
type Result struct {
	Knowledge         crdt.KnowledgeVector // вектор хранилища после синхронизации
	PulledRevisions   int                  // количество полученных ревизий, включая catch-up
	MergedEntities    int                  // количество новых версий от удаленной стороны
	ConflictsResolved int                  // количество разрешенных конфликтов
	PushedRevisions   int                  // количество отправленных ревизий
	PushedEntities    int                  // количество отправленных версий
	PushAttempts      int                  // количество попыток push
}

func (s *service) State() State {
	return State(s.state.Load())
}

func (s *service) setState(state State) {
	if prev := State(s.state.Swap(int32(state))); prev != state {
		s.logger.Debug("Sync state changed", "from", prev.String(), "to", state.String())
	}
}

// Synchronize выполняет цикл синхронизации.
// Отказ push из-за устаревшего вектора приводит к повторному циклу, не более MaxPushAttempts раз.
func (s *service) Synchronize(ctx context.Context) (*Result, error) {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StatePulling)) {
		return nil, ErrSynchronizationInProgress
	}
	defer s.setState(StateIdle)

	s.logger.Info("Starting synchronization", "knowledge", s.store.Knowledge().String())

	result := &Result{}
	for attempt := 1; ; attempt++ {
		result.PushAttempts = attempt

		err := s.cycle(ctx, result)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrStaleKnowledge) {
			s.logger.Error("Synchronization failed", "attempt", attempt, "error", err)
			return nil, err
		}
		if attempt >= s.cfg.MaxPushAttempts {
			return nil, fmt.Errorf("%w: push rejected after %d attempts: %w", ErrRemoteSynchronizationFailed, attempt, err)
		}
		s.logger.Warn("Push rejected, pulling again", "attempt", attempt)
	}

	result.Knowledge = s.store.Knowledge()

	s.logger.Info("Synchronization completed",
		"pulled", result.PulledRevisions,
		"merged", result.MergedEntities,
		"conflicts", result.ConflictsResolved,
		"pushed", result.PushedEntities,
		"attempts", result.PushAttempts,
		"knowledge", result.Knowledge.String())

	return result, nil
}

// cycle одна попытка: pull и разрешение конфликтов фиксируются до push,
// ошибка до первого Commit откатывает все полученное.
func (s *service) cycle(ctx context.Context, result *Result) error {
	return s.store.Transact(ctx, func(tx *store.Tx) error {
		s.setState(StatePulling)

		remoteKnowledge := crdt.NewKnowledgeVector(nil)
		pulled, merged := 0, 0
		err := s.remote.PullRevisions(ctx, tx.Knowledge(), func(rev models.RevisionRecord) error {
			s.setState(StateMergingRemote)
			remoteKnowledge.Merge(rev.KnowledgeVector)

			added, err := tx.MergeRevision(rev)
			if err != nil {
				return err
			}
			pulled++
			merged += added
			return nil
		})
		if err != nil {
			return fmt.Errorf("%w: pull: %w", ErrRemoteSynchronizationFailed, err)
		}

		tx.Tick()

		s.setState(StateResolvingConflicts)
		resolved, err := tx.ResolveConflicts(ctx, s.remote)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrRemoteSynchronizationFailed, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}
		result.PulledRevisions += pulled
		result.MergedEntities += merged
		result.ConflictsResolved += resolved

		s.setState(StatePushingLocal)
		localKnowledge := tx.Knowledge()
		revisions := tx.ComputeRevisions(remoteKnowledge)

		tx.Tick()
		if err := tx.Commit(ctx); err != nil {
			return err
		}

		if err := s.remote.PushRevisions(ctx, revisions, localKnowledge); err != nil {
			if errors.Is(err, ErrStaleKnowledge) {
				return err
			}
			return fmt.Errorf("%w: push: %w", ErrRemoteSynchronizationFailed, err)
		}

		result.PushedRevisions = len(revisions)
		result.PushedEntities = 0
		for _, rev := range revisions {
			result.PushedEntities += len(rev.Entities)
		}
		return nil
	})
}

func (s *service) Run(ctx context.Context, notifications <-chan struct{}) error {
	var tick <-chan time.Time
	if s.cfg.Interval > 0 {
		ticker := time.NewTicker(s.cfg.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info("Auto sync started", "interval", s.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Auto sync stopped")
			return ctx.Err()
		case _, ok := <-notifications:
			if !ok {
				notifications = nil
				continue
			}
			s.autoSync(ctx, "remote change")
		case <-s.store.Changes():
			s.autoSync(ctx, "local change")
		case <-tick:
			s.autoSync(ctx, "interval")
		}
	}
}

func (s *service) autoSync(ctx context.Context, reason string) {
	_, err := s.Synchronize(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSynchronizationInProgress):
		s.logger.Debug("Synchronization skipped", "reason", reason, "error", err)
	case ctx.Err() != nil:
	default:
		s.logger.Warn("Auto sync failed", "reason", reason, "error", err)
	}
}
