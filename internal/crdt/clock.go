package crdt

import (
	"sync"

	"github.com/google/uuid"
)

// Clock часы хранилища: собственный UUID процесса и вектор знаний.
// В отличие от часов Лампорта хранит счетчики всех известных процессов,
// что позволяет отличать причинно упорядоченные версии от конкурентных.
type Clock struct {
	knowledge KnowledgeVector // вектор знаний хранилища
	processID uuid.UUID       // уникальный идентификатор процесса (устройства)
	mu        sync.Mutex      // мьютекс для потокобезопасности
}

// NewClock создает часы нового хранилища со случайным UUID процесса.
// Начальное состояние {self: 1}.
func NewClock() *Clock {
	return NewClockWithProcessID(uuid.New())
}

// NewClockWithProcessID создает часы с заданным UUID процесса.
func NewClockWithProcessID(processID uuid.UUID) *Clock {
	return &Clock{
		processID: processID,
		knowledge: KnowledgeVector{processID: 1},
	}
}

// RestoreClock восстанавливает часы из сохраненного состояния.
// Используется при повторном открытии хранилища.
func RestoreClock(processID uuid.UUID, knowledge KnowledgeVector) *Clock {
	restored := knowledge.Clone()
	if restored.Clock(processID) < 1 {
		restored[processID] = 1
	}
	return &Clock{
		processID: processID,
		knowledge: restored,
	}
}

// Tick увеличивает собственный счетчик и возвращает новое значение.
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.knowledge.Increment(c.processID)
}

// Merge вливает удаленный вектор знаний.
func (c *Clock) Merge(other KnowledgeVector) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.knowledge.Merge(other)
}

// Vector возвращает копию текущего вектора знаний.
func (c *Clock) Vector() KnowledgeVector {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.knowledge.Clone()
}

// Time возвращает собственный счетчик без изменения.
func (c *Clock) Time() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.knowledge.Clock(c.processID)
}

// ProcessID возвращает UUID процесса.
func (c *Clock) ProcessID() uuid.UUID {
	return c.processID
}

// Set заменяет вектор. Используется при откате и фиксации рабочих копий.
func (c *Clock) Set(knowledge KnowledgeVector) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.knowledge = knowledge.Clone()
}
