package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/client/storage"
	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

// ConflictResolver выбирает одну версию из набора конкурентных версий записи.
// Набор не пуст и может содержать больше двух версий.
type ConflictResolver interface {
	ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error)
}

// ResolverFunc адаптер функции к ConflictResolver
type ResolverFunc func(ctx context.Context, conflicts []models.Entity) (models.Entity, error)

// ChooseConflictResolution вызывает f(ctx, conflicts)
func (f ResolverFunc) ChooseConflictResolution(ctx context.Context, conflicts []models.Entity) (models.Entity, error) {
	return f(ctx, conflicts)
}

// Store локальное версионированное хранилище записей плана ухода.
// Все изменения одного хранилища выполняются последовательно под mu.
type Store struct {
	storage storage.StoreStorage
	graph   *crdt.VersionGraph[*models.Version]
	clock   *crdt.Clock
	logger  *slog.Logger
	changes chan struct{}
	now     func() time.Time
	mu      sync.Mutex
}

// Open загружает версии и часы из storage.
// Для нового хранилища создаются часы со случайным UUID процесса.
func Open(ctx context.Context, st storage.StoreStorage, logger *slog.Logger) (*Store, error) {
	clock, err := loadClock(ctx, st)
	if err != nil {
		return nil, err
	}

	versions, err := st.LoadVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load versions: %w", err)
	}

	graph := crdt.NewVersionGraph[*models.Version]()
	for _, v := range versions {
		graph.Add(v)
	}

	logger.Info("Store opened",
		"process_id", clock.ProcessID(),
		"versions", graph.Size(),
		"knowledge", clock.Vector().String())

	return &Store{
		storage: st,
		graph:   graph,
		clock:   clock,
		logger:  logger,
		changes: make(chan struct{}, 1),
		now:     time.Now,
	}, nil
}

func loadClock(ctx context.Context, st storage.StoreStorage) (*crdt.Clock, error) {
	processID, err := st.GetProcessID(ctx)
	if errors.Is(err, storage.ErrClockNotFound) {
		clock := crdt.NewClock()
		if err := st.InitClock(ctx, clock.ProcessID(), clock.Vector()); err != nil {
			return nil, fmt.Errorf("failed to init clock: %w", err)
		}
		return clock, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get process id: %w", err)
	}

	knowledge, err := st.GetKnowledge(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get knowledge vector: %w", err)
	}

	return crdt.RestoreClock(processID, knowledge), nil
}

// ProcessID UUID процесса этого хранилища
func (s *Store) ProcessID() uuid.UUID {
	return s.clock.ProcessID()
}

// Knowledge возвращает копию текущего вектора знаний
func (s *Store) Knowledge() crdt.KnowledgeVector {
	return s.clock.Vector()
}

// Changes сигнализирует о локальных изменениях (Add, Update, Delete).
// Сигналы схлопываются: пропущенный сигнал означает, что предыдущий еще не прочитан.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Transact выполняет fn на рабочей копии хранилища под мьютексом.
// Изменения попадают в хранилище только через tx.Commit, все незафиксированное
// после возврата fn отбрасывается.
func (s *Store) Transact(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		store: s,
		graph: s.graph.Clone(),
		clock: crdt.RestoreClock(s.clock.ProcessID(), s.clock.Vector()),
	}
	return fn(tx)
}

// Add добавляет новые записи
func (s *Store) Add(ctx context.Context, entities ...models.Entity) ([]models.Entity, error) {
	return s.mutate(ctx, "add", entities, (*Tx).Add)
}

// Update создает новые версии существующих записей
func (s *Store) Update(ctx context.Context, entities ...models.Entity) ([]models.Entity, error) {
	return s.mutate(ctx, "update", entities, (*Tx).Update)
}

// Delete помечает записи удаленными
func (s *Store) Delete(ctx context.Context, entities ...models.Entity) ([]models.Entity, error) {
	return s.mutate(ctx, "delete", entities, (*Tx).Delete)
}

func (s *Store) mutate(ctx context.Context, op string, entities []models.Entity,
	fn func(tx *Tx, entities ...models.Entity) ([]models.Entity, error)) ([]models.Entity, error) {
	var result []models.Entity
	err := s.Transact(ctx, func(tx *Tx) error {
		var err error
		result, err = fn(tx, entities...)
		if err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to %s entities: %w", op, err)
	}

	s.logger.Debug("Local change committed", "op", op, "count", len(result))
	s.notify()
	return result, nil
}

func (s *Store) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// MergeRevision применяет ревизию удаленной стороны и сразу фиксирует ее
func (s *Store) MergeRevision(ctx context.Context, rev models.RevisionRecord) (int, error) {
	var added int
	err := s.Transact(ctx, func(tx *Tx) error {
		var err error
		if added, err = tx.MergeRevision(rev); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	return added, err
}

// ResolveConflicts разрешает все конфликты и фиксирует результат
func (s *Store) ResolveConflicts(ctx context.Context, resolver ConflictResolver) (int, error) {
	var resolved int
	err := s.Transact(ctx, func(tx *Tx) error {
		var err error
		if resolved, err = tx.ResolveConflicts(ctx, resolver); err != nil {
			return err
		}
		return tx.Commit(ctx)
	})
	return resolved, err
}

// ComputeRevisions возвращает ревизии, неизвестные обладателю вектора since
func (s *Store) ComputeRevisions(since crdt.KnowledgeVector) []models.RevisionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return computeRevisions(s.graph.All(), since)
}

// Fetch возвращает текущие неудаленные записи типа t, отсортированные по id
func (s *Store) Fetch(t models.EntityType) []models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := string(t) + "/"
	var result []models.Entity
	for _, key := range s.graph.Lineages() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		head := headOf(s.graph.Tips(key))
		if head.Entity.Header().IsDeleted() {
			continue
		}
		result = append(result, head.Entity.Clone())
	}
	return result
}

// FetchAt возвращает записи типа t в том виде, в каком они действовали на момент at.
// Версия действует, если её effectiveDate не позже at и к at не вступил в силу её преемник.
// Записи, удаленные не позже at, не возвращаются.
func (s *Store) FetchAt(t models.EntityType, at time.Time) []models.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := string(t) + "/"
	var result []models.Entity
	for _, key := range s.graph.Lineages() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		v := effectiveAt(s.graph.Versions(key), at)
		if v == nil || v.Entity.Header().IsDeleted() {
			continue
		}
		result = append(result, v.Entity.Clone())
	}
	return result
}

// FetchByID возвращает текущую версию записи
func (s *Store) FetchByID(t models.EntityType, id string) (models.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.EntityKey(t, id)
	tips := s.graph.Tips(key)
	if len(tips) == 0 {
		return models.Entity{}, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
	}

	head := headOf(tips)
	if head.Entity.Header().IsDeleted() {
		return models.Entity{}, fmt.Errorf("%w: %s", ErrEntityDeleted, key)
	}
	return head.Entity.Clone(), nil
}

// Versions возвращает всю историю записи в порядке добавления вместе с векторами
func (s *Store) Versions(t models.EntityType, id string) ([]*models.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.EntityKey(t, id)
	versions := s.graph.Versions(key)
	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
	}

	result := make([]*models.Version, 0, len(versions))
	for _, v := range versions {
		result = append(result, models.NewVersion(v.Entity, v.Knowledge))
	}
	return result, nil
}

// Conflicts количество записей с несколькими конкурентными версиями
func (s *Store) Conflicts() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.graph.ConflictedKeys())
}

// Size общее количество версий
func (s *Store) Size() int {
	return s.graph.Size()
}
