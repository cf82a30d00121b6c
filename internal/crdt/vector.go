package crdt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Ordering результат сравнения двух векторов знаний.
type Ordering int

const (
	// Equal векторы совпадают по всем процессам
	Equal Ordering = iota
	// Less получатель строго предшествует аргументу
	Less
	// Greater получатель строго следует за аргументом
	Greater
	// Concurrent ни один из векторов не доминирует
	Concurrent
)

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "equal"
	case Less:
		return "less"
	case Greater:
		return "greater"
	case Concurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// KnowledgeVector отображение UUID процесса в логические часы.
// Отсутствующий процесс читается как 0.
// Нулевое значение (nil) является пустым вектором, но Increment и Merge
// требуют инициализированного вектора, см. NewKnowledgeVector.
type KnowledgeVector map[uuid.UUID]int64

// NewKnowledgeVector создает вектор из пар процесс-часы.
func NewKnowledgeVector(clocks map[uuid.UUID]int64) KnowledgeVector {
	v := make(KnowledgeVector, len(clocks))
	for id, clock := range clocks {
		v[id] = clock
	}
	return v
}

// Clock возвращает часы процесса, 0 если процесс неизвестен.
func (v KnowledgeVector) Clock(id uuid.UUID) int64 {
	return v[id]
}

// Increment увеличивает часы процесса на единицу и возвращает новое значение.
func (v KnowledgeVector) Increment(id uuid.UUID) int64 {
	v[id]++
	return v[id]
}

// Merge поэлементный максимум по объединению ключей.
// Ключи other сохраняются даже с нулевыми часами.
func (v KnowledgeVector) Merge(other KnowledgeVector) {
	for id, clock := range other {
		if current, ok := v[id]; !ok || clock > current {
			v[id] = clock
		}
	}
}

// Merged возвращает новый вектор, равный объединению v и other.
// Аргументы не изменяются.
func Merged(v, other KnowledgeVector) KnowledgeVector {
	result := v.Clone()
	result.Merge(other)
	return result
}

// Clone создает независимую копию вектора
func (v KnowledgeVector) Clone() KnowledgeVector {
	result := make(KnowledgeVector, len(v))
	for id, clock := range v {
		result[id] = clock
	}
	return result
}

// Compare сравнивает векторы по всем процессам из обоих векторов.
func (v KnowledgeVector) Compare(other KnowledgeVector) Ordering {
	less, greater := false, false

	for _, id := range unionKeys(v, other) {
		a, b := v.Clock(id), other.Clock(id)
		switch {
		case a < b:
			less = true
		case a > b:
			greater = true
		}
		if less && greater {
			return Concurrent
		}
	}

	switch {
	case less:
		return Less
	case greater:
		return Greater
	default:
		return Equal
	}
}

// Less true если все часы v не больше часов other и хотя бы одни строго меньше.
func (v KnowledgeVector) Less(other KnowledgeVector) bool {
	return v.Compare(other) == Less
}

// Equal true если векторы совпадают (отсутствующий ключ равен нулю).
func (v KnowledgeVector) Equal(other KnowledgeVector) bool {
	return v.Compare(other) == Equal
}

// Dominates true если для каждого процесса из other часы v не меньше.
func (v KnowledgeVector) Dominates(other KnowledgeVector) bool {
	for id, clock := range other {
		if v.Clock(id) < clock {
			return false
		}
	}
	return true
}

// Processes возвращает отсортированный список процессов вектора.
func (v KnowledgeVector) Processes() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sortUUIDs(ids)
	return ids
}

// Key каноническое строковое представление, используется для группировки ревизий.
func (v KnowledgeVector) Key() string {
	var sb strings.Builder
	for i, id := range v.Processes() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(id.String())
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatInt(v[id], 10))
	}
	return sb.String()
}

// String для логов
func (v KnowledgeVector) String() string {
	return "{" + v.Key() + "}"
}

// ClockInfo элемент wire формата вектора.
type ClockInfo struct {
	ID    uuid.UUID `json:"id"`
	Clock int64     `json:"clock"`
}

type wireVector struct {
	Processes []ClockInfo `json:"processes"`
}

// Entries возвращает часы в порядке сортировки процессов.
func (v KnowledgeVector) Entries() []ClockInfo {
	entries := make([]ClockInfo, 0, len(v))
	for _, id := range v.Processes() {
		entries = append(entries, ClockInfo{ID: id, Clock: v[id]})
	}
	return entries
}

// FromEntries собирает вектор из wire элементов.
// Повторяющиеся процессы объединяются по максимуму.
func FromEntries(entries []ClockInfo) KnowledgeVector {
	v := make(KnowledgeVector, len(entries))
	for _, e := range entries {
		if current, ok := v[e.ID]; !ok || e.Clock > current {
			v[e.ID] = e.Clock
		}
	}
	return v
}

// MarshalJSON кодирует вектор как {"processes":[{"id":...,"clock":...}]}
func (v KnowledgeVector) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireVector{Processes: v.Entries()})
}

// UnmarshalJSON декодирует wire формат вектора
func (v *KnowledgeVector) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = KnowledgeVector{}
		return nil
	}

	var wire wireVector
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("failed to decode knowledge vector: %w", err)
	}
	for _, e := range wire.Processes {
		if e.Clock < 0 {
			return fmt.Errorf("negative clock %d for process %s", e.Clock, e.ID)
		}
	}

	*v = FromEntries(wire.Processes)
	return nil
}

func unionKeys(a, b KnowledgeVector) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	ids := make([]uuid.UUID, 0, len(a)+len(b))
	for _, m := range []KnowledgeVector{a, b} {
		for id := range m {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func sortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
}
