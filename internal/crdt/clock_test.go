package crdt

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClock(t *testing.T) {
	clock := NewClock()

	require.NotNil(t, clock)
	assert.NotEqual(t, uuid.Nil, clock.ProcessID(), "ProcessID should not be empty")
	assert.Equal(t, int64(1), clock.Time(), "Fresh store starts at 1")
	assert.Equal(t, KnowledgeVector{clock.ProcessID(): 1}, clock.Vector())
}

func TestNewClockWithProcessID(t *testing.T) {
	id := uuid.New()
	clock := NewClockWithProcessID(id)

	assert.Equal(t, id, clock.ProcessID())
	assert.Equal(t, int64(1), clock.Time())
}

func TestClock_Tick(t *testing.T) {
	clock := NewClock()

	tests := []struct {
		name          string
		expectedValue int64
	}{
		{"First tick", 2},
		{"Second tick", 3},
		{"Third tick", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := clock.Tick()
			assert.Equal(t, tt.expectedValue, result, "Tick should return incremented value")
			assert.Equal(t, tt.expectedValue, clock.Time())
		})
	}
}

func TestClock_Merge(t *testing.T) {
	self := uuid.New()
	other := uuid.New()
	clock := NewClockWithProcessID(self)

	clock.Merge(KnowledgeVector{self: 0, other: 5})

	assert.Equal(t, KnowledgeVector{self: 1, other: 5}, clock.Vector())
	assert.Equal(t, int64(1), clock.Time(), "Merge must not move own counter backwards")
}

func TestClock_VectorIsCopy(t *testing.T) {
	clock := NewClock()

	v := clock.Vector()
	v.Increment(clock.ProcessID())

	assert.Equal(t, int64(1), clock.Time(), "Modifying returned vector must not affect clock")
}

func TestRestoreClock(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	t.Run("restores saved vector", func(t *testing.T) {
		clock := RestoreClock(self, KnowledgeVector{self: 7, other: 4})
		assert.Equal(t, int64(7), clock.Time())
		assert.Equal(t, int64(4), clock.Vector().Clock(other))
	})

	t.Run("own counter is at least one", func(t *testing.T) {
		clock := RestoreClock(self, KnowledgeVector{other: 4})
		assert.Equal(t, int64(1), clock.Time())
	})
}

func TestClock_Concurrency(t *testing.T) {
	clock := NewClock()
	const goroutines = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			clock.Tick()
			clock.Merge(KnowledgeVector{uuid.New(): 1})
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines+1), clock.Time())
	assert.Len(t, clock.Vector(), goroutines+1)
}
