package crdt

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Version узел графа версий.
type Version interface {
	// VersionUUID уникальный идентификатор версии
	VersionUUID() uuid.UUID
	// LineageKey логическая идентичность сущности (тип + id)
	LineageKey() string
	// PreviousVersionUUIDs версии той же сущности, которые заменяет эта версия
	PreviousVersionUUIDs() []uuid.UUID
}

// VersionGraph grow-only set версий с ссылками на предыдущие версии.
// Версия никогда не перезаписывается, поэтому Merge коммутативен и идемпотентен,
// а порядок применения ревизий не влияет на итоговый граф.
type VersionGraph[V Version] struct {
	versions map[uuid.UUID]V        // map[uuid]version
	lineages map[string][]uuid.UUID // версии каждой сущности в порядке вставки
	order    []uuid.UUID            // порядок вставки для детерминированного вывода
	mu       sync.RWMutex           // мьютекс для потокобезопасности
}

// NewVersionGraph создает пустой граф.
func NewVersionGraph[V Version]() *VersionGraph[V] {
	return &VersionGraph[V]{
		versions: make(map[uuid.UUID]V),
		lineages: make(map[string][]uuid.UUID),
	}
}

// Add добавляет версию, если ее UUID еще неизвестен.
// Возвращает true, если версия была добавлена.
func (g *VersionGraph[V]) Add(v V) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.add(v)
}

func (g *VersionGraph[V]) add(v V) bool {
	id := v.VersionUUID()
	if _, exists := g.versions[id]; exists {
		return false
	}

	g.versions[id] = v
	key := v.LineageKey()
	g.lineages[key] = append(g.lineages[key], id)
	g.order = append(g.order, id)
	return true
}

// Get возвращает версию по UUID.
func (g *VersionGraph[V]) Get(id uuid.UUID) (V, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	v, ok := g.versions[id]
	return v, ok
}

// Contains проверяет наличие версии
func (g *VersionGraph[V]) Contains(id uuid.UUID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.versions[id]
	return ok
}

// HasLineage проверяет, есть ли хотя бы одна версия сущности.
func (g *VersionGraph[V]) HasLineage(key string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.lineages[key]) > 0
}

// Versions возвращает все версии сущности в порядке вставки.
func (g *VersionGraph[V]) Versions(key string) []V {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := g.lineages[key]
	result := make([]V, 0, len(ids))
	for _, id := range ids {
		result = append(result, g.versions[id])
	}
	return result
}

// Tips возвращает версии сущности, на которые не ссылается ни одна другая
// версия той же сущности. Больше одной вершины означает конфликт.
func (g *VersionGraph[V]) Tips(key string) []V {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.tips(key)
}

func (g *VersionGraph[V]) tips(key string) []V {
	ids := g.lineages[key]

	referenced := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		for _, prev := range g.versions[id].PreviousVersionUUIDs() {
			referenced[prev] = struct{}{}
		}
	}

	result := make([]V, 0, 1)
	for _, id := range ids {
		if _, ok := referenced[id]; !ok {
			result = append(result, g.versions[id])
		}
	}
	return result
}

// Lineages возвращает ключи всех сущностей в отсортированном порядке.
func (g *VersionGraph[V]) Lineages() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0, len(g.lineages))
	for key := range g.lineages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ConflictedKeys возвращает отсортированные ключи сущностей с двумя и более вершинами.
func (g *VersionGraph[V]) ConflictedKeys() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var keys []string
	for key := range g.lineages {
		if len(g.tips(key)) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

// All возвращает все версии в порядке вставки.
// Используется для синхронизации с другими узлами.
func (g *VersionGraph[V]) All() []V {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]V, 0, len(g.order))
	for _, id := range g.order {
		result = append(result, g.versions[id])
	}
	return result
}

// Merge добавляет в граф все версии other, которых еще нет.
// Возвращает количество добавленных версий.
func (g *VersionGraph[V]) Merge(other *VersionGraph[V]) int {
	if g == other {
		return 0
	}

	other.mu.RLock()
	incoming := make([]V, 0, len(other.order))
	for _, id := range other.order {
		incoming = append(incoming, other.versions[id])
	}
	other.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	added := 0
	for _, v := range incoming {
		if g.add(v) {
			added++
		}
	}
	return added
}

// Clone создает копию графа. Сами версии не копируются: они неизменяемы.
func (g *VersionGraph[V]) Clone() *VersionGraph[V] {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := &VersionGraph[V]{
		versions: make(map[uuid.UUID]V, len(g.versions)),
		lineages: make(map[string][]uuid.UUID, len(g.lineages)),
		order:    append([]uuid.UUID(nil), g.order...),
	}
	for id, v := range g.versions {
		clone.versions[id] = v
	}
	for key, ids := range g.lineages {
		clone.lineages[key] = append([]uuid.UUID(nil), ids...)
	}
	return clone
}

// Size возвращает общее количество версий.
func (g *VersionGraph[V]) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.versions)
}
