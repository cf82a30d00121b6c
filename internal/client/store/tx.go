package store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/caresync/internal/crdt"
	"github.com/iudanet/caresync/internal/models"
)

// Tx рабочая копия хранилища внутри Store.Transact.
// Tx не потокобезопасен и не должен использоваться после возврата из Transact.
type Tx struct {
	store   *Store
	graph   *crdt.VersionGraph[*models.Version]
	clock   *crdt.Clock
	pending []*models.Version // версии, добавленные после последнего Commit
}

// Knowledge текущий вектор рабочей копии
func (tx *Tx) Knowledge() crdt.KnowledgeVector {
	return tx.clock.Vector()
}

// Tick увеличивает собственные часы хранилища
func (tx *Tx) Tick() int64 {
	return tx.clock.Tick()
}

// Pending количество незафиксированных версий
func (tx *Tx) Pending() int {
	return len(tx.pending)
}

// Commit атомарно записывает новые версии и вектор знаний
func (tx *Tx) Commit(ctx context.Context) error {
	knowledge := tx.clock.Vector()
	if err := tx.store.storage.AppendVersions(ctx, tx.pending, knowledge); err != nil {
		return fmt.Errorf("failed to commit versions: %w", err)
	}

	for _, v := range tx.pending {
		tx.store.graph.Add(v)
	}
	tx.store.clock.Set(knowledge)
	tx.pending = nil
	return nil
}

func (tx *Tx) append(v *models.Version) {
	if tx.graph.Add(v) {
		tx.pending = append(tx.pending, v)
	}
}

func (tx *Tx) now() time.Time {
	return tx.store.now()
}

// Add добавляет новые записи. Версии отмечаются текущим вектором знаний.
func (tx *Tx) Add(entities ...models.Entity) ([]models.Entity, error) {
	now := tx.now()
	knowledge := tx.clock.Vector()
	seen := make(map[string]struct{}, len(entities))
	result := make([]models.Entity, 0, len(entities))

	for _, in := range entities {
		e, err := prepare(in, seen)
		if err != nil {
			return nil, err
		}

		key := e.Key()
		if tx.graph.HasLineage(key) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, key)
		}

		h := e.Header()
		if h.UUID == uuid.Nil {
			h.UUID = uuid.New()
		} else if tx.graph.Contains(h.UUID) {
			return nil, fmt.Errorf("%w: version %s", ErrAlreadyExists, h.UUID)
		}
		h.PreviousVersionUUIDs = nil
		h.CreatedDate = now
		h.UpdatedDate = now
		h.DeletedDate = nil
		if h.EffectiveDate.IsZero() {
			h.EffectiveDate = now
		}
		if h.Timezone == "" {
			h.Timezone = now.Location().String()
		}

		tx.append(models.NewVersion(e, knowledge))
		result = append(result, e.Clone())
	}

	return result, nil
}

// Update создает новую версию каждой записи. Новая версия заменяет все текущие вершины,
// поэтому обновление конфликтующей записи также разрешает конфликт.
func (tx *Tx) Update(entities ...models.Entity) ([]models.Entity, error) {
	return tx.revise(entities, func(e models.Entity, head *models.Version, now time.Time) models.Entity {
		h := e.Header()
		prev := head.Entity.Header()
		h.CreatedDate = prev.CreatedDate
		if h.EffectiveDate.IsZero() {
			h.EffectiveDate = prev.EffectiveDate
		}
		h.DeletedDate = nil
		return e
	})
}

// Delete создает версию-надгробие с датой удаления.
// Содержимое надгробия берется из текущей версии.
func (tx *Tx) Delete(entities ...models.Entity) ([]models.Entity, error) {
	return tx.revise(entities, func(_ models.Entity, head *models.Version, now time.Time) models.Entity {
		e := head.Entity.Clone()
		deleted := now
		e.Header().DeletedDate = &deleted
		return e
	})
}

func (tx *Tx) revise(entities []models.Entity,
	build func(e models.Entity, head *models.Version, now time.Time) models.Entity) ([]models.Entity, error) {
	now := tx.now()
	knowledge := tx.clock.Vector()
	seen := make(map[string]struct{}, len(entities))
	result := make([]models.Entity, 0, len(entities))

	for _, in := range entities {
		e, err := prepare(in, seen)
		if err != nil {
			return nil, err
		}

		key := e.Key()
		tips := tx.graph.Tips(key)
		if len(tips) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, key)
		}
		head := headOf(tips)
		if head.Entity.Header().IsDeleted() {
			return nil, fmt.Errorf("%w: %s", ErrEntityDeleted, key)
		}

		next := build(e, head, now)
		h := next.Header()
		h.UUID = uuid.New()
		h.PreviousVersionUUIDs = versionUUIDs(tips)
		h.UpdatedDate = now

		tx.append(models.NewVersion(next, knowledge))
		result = append(result, next.Clone())
	}

	return result, nil
}

// prepare проверяет запись и возвращает её копию
func prepare(in models.Entity, seen map[string]struct{}) (models.Entity, error) {
	if err := in.Validate(); err != nil {
		return models.Entity{}, err
	}
	if in.Header().ID == "" {
		return models.Entity{}, fmt.Errorf("%w: missing id", models.ErrInvalidEntity)
	}

	key := in.Key()
	if _, dup := seen[key]; dup {
		return models.Entity{}, fmt.Errorf("%w: %s", ErrDuplicateID, key)
	}
	seen[key] = struct{}{}

	return in.Clone(), nil
}

// MergeRevision вливает вектор ревизии в вектор хранилища и добавляет неизвестные версии,
// отмечая их вектором ревизии. Возвращает количество добавленных версий.
func (tx *Tx) MergeRevision(rev models.RevisionRecord) (int, error) {
	if err := rev.Validate(); err != nil {
		return 0, fmt.Errorf("invalid revision: %w", err)
	}

	tx.clock.Merge(rev.KnowledgeVector)

	added := 0
	for _, e := range rev.Entities {
		before := len(tx.pending)
		tx.append(models.NewVersion(e, rev.KnowledgeVector))
		if len(tx.pending) > before {
			added++
		}
	}
	return added, nil
}

// ComputeRevisions ревизии рабочей копии, неизвестные обладателю вектора since
func (tx *Tx) ComputeRevisions(since crdt.KnowledgeVector) []models.RevisionRecord {
	return computeRevisions(tx.graph.All(), since)
}

// ResolveConflicts вызывает resolver один раз для каждой конфликтующей записи
// со всеми ее вершинами. Победитель добавляется как новая версия, заменяющая все вершины.
// Возвращает количество разрешенных конфликтов.
func (tx *Tx) ResolveConflicts(ctx context.Context, resolver ConflictResolver) (int, error) {
	resolved := 0
	for _, key := range tx.graph.ConflictedKeys() {
		tips := tx.graph.Tips(key)

		conflicts := make([]models.Entity, 0, len(tips))
		for _, tip := range tips {
			conflicts = append(conflicts, tip.Entity.Clone())
		}

		choice, err := resolver.ChooseConflictResolution(ctx, conflicts)
		if err != nil {
			return resolved, fmt.Errorf("failed to resolve conflict for %s: %w", key, err)
		}

		winner, ok := findTip(tips, choice)
		if !ok {
			return resolved, fmt.Errorf("%w: %s", ErrInvalidResolution, key)
		}

		e := winner.Entity.Clone()
		h := e.Header()
		h.UUID = uuid.New()
		h.PreviousVersionUUIDs = versionUUIDs(tips)

		tx.append(models.NewVersion(e, tx.clock.Vector()))
		resolved++

		tx.store.logger.Debug("Conflict resolved",
			"key", key,
			"versions", len(tips),
			"winner", winner.VersionUUID())
	}
	return resolved, nil
}

func findTip(tips []*models.Version, choice models.Entity) (*models.Version, bool) {
	if choice.Validate() != nil {
		return nil, false
	}
	id := choice.Header().UUID
	for _, tip := range tips {
		if tip.VersionUUID() == id {
			return tip, true
		}
	}
	return nil, false
}

// computeRevisions группирует новые для since версии по их векторам в порядке добавления.
// Версия новая, если ее вектор опережает since хотя бы по одному общему процессу
// или не содержит ни одного процесса из since.
func computeRevisions(versions []*models.Version, since crdt.KnowledgeVector) []models.RevisionRecord {
	revisions := make([]models.RevisionRecord, 0)
	index := make(map[string]int)

	for _, v := range versions {
		if !isNewer(v.Knowledge, since) {
			continue
		}

		key := v.Knowledge.Key()
		i, ok := index[key]
		if !ok {
			i = len(revisions)
			index[key] = i
			revisions = append(revisions, models.RevisionRecord{
				KnowledgeVector: v.Knowledge.Clone(),
				Entities:        []models.Entity{},
			})
		}
		revisions[i].Entities = append(revisions[i].Entities, v.Entity.Clone())
	}

	return revisions
}

func isNewer(stamp, since crdt.KnowledgeVector) bool {
	shared := false
	for process, clock := range since {
		stamped, ok := stamp[process]
		if !ok {
			continue
		}
		shared = true
		if stamped > clock {
			return true
		}
	}
	return !shared
}

// headOf текущая версия записи: вершина с самой поздней датой обновления,
// при равенстве побеждает больший UUID
func headOf(tips []*models.Version) *models.Version {
	var head *models.Version
	for _, tip := range tips {
		if head == nil {
			head = tip
			continue
		}
		a, b := tip.Entity.Header(), head.Entity.Header()
		if a.UpdatedDate.After(b.UpdatedDate) ||
			(a.UpdatedDate.Equal(b.UpdatedDate) && bytes.Compare(a.UUID[:], b.UUID[:]) > 0) {
			head = tip
		}
	}
	return head
}

// effectiveAt выбирает версию линии, действующую на момент at.
// Надгробие с датой удаления позже at еще не действует и не вытесняет предыдущую версию.
func effectiveAt(versions []*models.Version, at time.Time) *models.Version {
	superseded := make(map[uuid.UUID]bool)
	inEffect := make([]*models.Version, 0, len(versions))
	for _, v := range versions {
		h := v.Entity.Header()
		if h.EffectiveDate.After(at) || (h.DeletedDate != nil && h.DeletedDate.After(at)) {
			continue
		}
		for _, prev := range h.PreviousVersionUUIDs {
			superseded[prev] = true
		}
		inEffect = append(inEffect, v)
	}

	var candidates []*models.Version
	for _, v := range inEffect {
		if !superseded[v.VersionUUID()] {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return headOf(candidates)
}

func versionUUIDs(versions []*models.Version) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.VersionUUID())
	}
	return ids
}
