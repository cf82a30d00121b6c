package crdt

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testVersion struct {
	key      string
	previous []uuid.UUID
	id       uuid.UUID
}

func (v testVersion) VersionUUID() uuid.UUID            { return v.id }
func (v testVersion) LineageKey() string                { return v.key }
func (v testVersion) PreviousVersionUUIDs() []uuid.UUID { return v.previous }

func newTestVersion(key string, previous ...testVersion) testVersion {
	prev := make([]uuid.UUID, 0, len(previous))
	for _, p := range previous {
		prev = append(prev, p.id)
	}
	return testVersion{id: uuid.New(), key: key, previous: prev}
}

func uuidsOf(versions []testVersion) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(versions))
	for _, v := range versions {
		ids = append(ids, v.id)
	}
	return ids
}

func TestNewVersionGraph(t *testing.T) {
	g := NewVersionGraph[testVersion]()

	require.NotNil(t, g)
	assert.Equal(t, 0, g.Size())
	assert.Empty(t, g.ConflictedKeys())
}

func TestVersionGraph_Add(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	v1 := newTestVersion("task/a")

	assert.True(t, g.Add(v1), "First add should insert")
	assert.False(t, g.Add(v1), "Known UUID should be skipped")
	assert.Equal(t, 1, g.Size())

	got, ok := g.Get(v1.id)
	require.True(t, ok)
	assert.Equal(t, v1, got)
	assert.True(t, g.HasLineage("task/a"))
	assert.False(t, g.HasLineage("task/b"))
}

func TestVersionGraph_AddNeverOverwrites(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	v1 := newTestVersion("task/a")
	g.Add(v1)

	impostor := testVersion{id: v1.id, key: "task/other"}
	assert.False(t, g.Add(impostor))

	got, _ := g.Get(v1.id)
	assert.Equal(t, "task/a", got.key)
	assert.False(t, g.HasLineage("task/other"))
}

func TestVersionGraph_Tips(t *testing.T) {
	v1 := newTestVersion("task/a")
	v2 := newTestVersion("task/a", v1)
	v3 := newTestVersion("task/a", v1)
	v4 := newTestVersion("task/a", v2, v3)

	tests := []struct {
		name     string
		versions []testVersion
		expected []uuid.UUID
	}{
		{
			name:     "single version",
			versions: []testVersion{v1},
			expected: []uuid.UUID{v1.id},
		},
		{
			name:     "linear history",
			versions: []testVersion{v1, v2},
			expected: []uuid.UUID{v2.id},
		},
		{
			name:     "fork produces two tips",
			versions: []testVersion{v1, v2, v3},
			expected: []uuid.UUID{v2.id, v3.id},
		},
		{
			name:     "resolution joins fork",
			versions: []testVersion{v1, v2, v3, v4},
			expected: []uuid.UUID{v4.id},
		},
		{
			name:     "resolution arrives before its parents",
			versions: []testVersion{v4, v3, v1, v2},
			expected: []uuid.UUID{v4.id},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewVersionGraph[testVersion]()
			for _, v := range tt.versions {
				g.Add(v)
			}
			assert.Equal(t, tt.expected, uuidsOf(g.Tips("task/a")))
		})
	}
}

func TestVersionGraph_TipsIgnoreOtherLineages(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	a := newTestVersion("task/a")
	// версия другой сущности ссылается на a, но не делает a устаревшей
	b := testVersion{id: uuid.New(), key: "task/b", previous: []uuid.UUID{a.id}}
	g.Add(a)
	g.Add(b)

	assert.Equal(t, []uuid.UUID{a.id}, uuidsOf(g.Tips("task/a")))
	assert.Equal(t, []uuid.UUID{b.id}, uuidsOf(g.Tips("task/b")))
}

func TestVersionGraph_ConflictedKeys(t *testing.T) {
	g := NewVersionGraph[testVersion]()

	for _, key := range []string{"task/b", "task/a"} {
		root := newTestVersion(key)
		g.Add(root)
		g.Add(newTestVersion(key, root))
		g.Add(newTestVersion(key, root))
	}
	clean := newTestVersion("patient/x")
	g.Add(clean)

	assert.Equal(t, []string{"task/a", "task/b"}, g.ConflictedKeys())
	assert.Equal(t, []string{"patient/x", "task/a", "task/b"}, g.Lineages())
}

func TestVersionGraph_VersionsAndAllKeepInsertionOrder(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	v1 := newTestVersion("task/a")
	other := newTestVersion("task/b")
	v2 := newTestVersion("task/a", v1)

	g.Add(v1)
	g.Add(other)
	g.Add(v2)

	assert.Equal(t, []uuid.UUID{v1.id, v2.id}, uuidsOf(g.Versions("task/a")))
	assert.Equal(t, []uuid.UUID{v1.id, other.id, v2.id}, uuidsOf(g.All()))
}

func TestVersionGraph_Merge(t *testing.T) {
	root := newTestVersion("task/a")
	left := newTestVersion("task/a", root)
	right := newTestVersion("task/a", root)

	build := func(versions ...testVersion) *VersionGraph[testVersion] {
		g := NewVersionGraph[testVersion]()
		for _, v := range versions {
			g.Add(v)
		}
		return g
	}

	tipSet := func(g *VersionGraph[testVersion]) []uuid.UUID {
		return uuidsOf(g.Tips("task/a"))
	}

	t.Run("commutative", func(t *testing.T) {
		ab := build(root, left)
		ab.Merge(build(root, right))

		ba := build(root, right)
		ba.Merge(build(root, left))

		assert.ElementsMatch(t, tipSet(ab), tipSet(ba))
		assert.Equal(t, ab.Size(), ba.Size())
	})

	t.Run("idempotent", func(t *testing.T) {
		g := build(root, left)
		assert.Equal(t, 0, g.Merge(build(root, left)))
		assert.Equal(t, 2, g.Size())
		assert.Equal(t, 0, g.Merge(g), "Self merge is a no-op")
	})

	t.Run("associative", func(t *testing.T) {
		x, y, z := build(root), build(left), build(right)

		xy := x.Clone()
		xy.Merge(y)
		xy.Merge(z)

		yz := y.Clone()
		yz.Merge(z)
		x2 := x.Clone()
		x2.Merge(yz)

		assert.ElementsMatch(t, tipSet(xy), tipSet(x2))
		assert.ElementsMatch(t, uuidsOf(xy.All()), uuidsOf(x2.All()))
	})

	t.Run("returns number of added versions", func(t *testing.T) {
		g := build(root)
		assert.Equal(t, 2, g.Merge(build(root, left, right)))
	})
}

func TestVersionGraph_CloneIsIndependent(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	v1 := newTestVersion("task/a")
	g.Add(v1)

	clone := g.Clone()
	clone.Add(newTestVersion("task/a", v1))

	assert.Equal(t, 1, g.Size())
	assert.Equal(t, 2, clone.Size())
	assert.Len(t, g.Versions("task/a"), 1)
}

func TestVersionGraph_ConcurrentAdd(t *testing.T) {
	g := NewVersionGraph[testVersion]()
	const goroutines = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			g.Add(newTestVersion("task/a"))
			_ = g.ConflictedKeys()
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines, g.Size())
	assert.Len(t, g.Tips("task/a"), goroutines)
}
