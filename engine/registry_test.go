package engine

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-voxel/core"
)

type posComp struct {
	core.ComponentBase
	X, Y int
}

func (*posComp) Tag() core.Tag { return "Position" }

func newPos(e core.Entity, x, y int) *posComp {
	return &posComp{ComponentBase: core.NewComponentBase(e), X: x, Y: y}
}

type velComp struct {
	core.ComponentBase
	DX int
}

func (*velComp) Tag() core.Tag { return "Velocity" }

func newVel(e core.Entity, dx int) *velComp {
	return &velComp{ComponentBase: core.NewComponentBase(e), DX: dx}
}

type nameComp struct {
	core.ComponentBase
}

func (*nameComp) Tag() core.Tag { return "Label" }

func TestAssignAndGet(t *testing.T) {
	r := NewRegistry()
	e := r.Create("player")
	c := newPos(e, 1, 2)
	require.NoError(t, r.Assign(c))

	got, err := r.Component(e, "Position")
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.True(t, r.Has(e, "Position"))
	assert.False(t, r.Has(e, "Velocity"))

	typed, err := Get[*posComp](r, e)
	require.NoError(t, err)
	assert.Equal(t, 2, typed.Y)
	assert.Equal(t, e, typed.Entity())
}

func TestAssignOverwrites(t *testing.T) {
	r := NewRegistry()
	e := r.Create("player")
	first := newPos(e, 1, 1)
	second := newPos(e, 9, 9)
	require.NoError(t, r.Assign(first))
	require.NoError(t, r.Assign(second))

	got := MustGet[*posComp](r, e)
	assert.Same(t, second, got)
	assert.NotSame(t, first, got)
	assert.Equal(t, 1, r.Store("Position").Count())
}

func TestMissingComponent(t *testing.T) {
	r := NewRegistry()
	e := r.Create("empty")

	_, err := r.Component(e, "Position")
	assert.True(t, eris.Is(err, ErrMissingComponent))

	require.NoError(t, r.Assign(newVel(e, 1)))
	_, err = Get[*posComp](r, e)
	assert.True(t, eris.Is(err, ErrMissingComponent))

	assert.Panics(t, func() { MustGet[*posComp](r, e) })
}

func TestAssignRejections(t *testing.T) {
	r := NewRegistry()
	a := r.Create("a")
	b := r.Create("b")

	err := r.AssignTo(b, newPos(a, 0, 0))
	assert.True(t, eris.Is(err, ErrForeignComponent))

	r.Destroy(a)
	err = r.Assign(newPos(a, 0, 0))
	assert.True(t, eris.Is(err, ErrEntityNotFound))

	_, err = r.Component(a, "Position")
	assert.True(t, eris.Is(err, ErrEntityNotFound))
}

func TestEnableFlagIndependentOfQueries(t *testing.T) {
	r := NewRegistry()
	e := r.Create("emitter")
	c := newPos(e, 0, 0)
	require.NoError(t, r.Assign(c))
	c.Disable()

	var seen []core.Entity
	r.ApplyToEach([]core.Tag{"Position"}, func(e core.Entity) { seen = append(seen, e) })
	assert.Equal(t, []core.Entity{e}, seen)
	assert.False(t, MustGet[*posComp](r, e).IsEnabled())
}

func TestApplyToEachAndSemantics(t *testing.T) {
	r := NewRegistry()
	both := r.Create("both")
	onlyPos := r.Create("pos")
	onlyVel := r.Create("vel")
	extra := r.Create("extra")

	require.NoError(t, r.Assign(newPos(both, 0, 0)))
	require.NoError(t, r.Assign(newVel(both, 0)))
	require.NoError(t, r.Assign(newPos(onlyPos, 0, 0)))
	require.NoError(t, r.Assign(newVel(onlyVel, 0)))
	require.NoError(t, r.Assign(newVel(extra, 0)))
	require.NoError(t, r.Assign(&nameComp{ComponentBase: core.NewComponentBase(extra)}))
	require.NoError(t, r.Assign(newPos(extra, 0, 0)))

	calls := map[core.Entity]int{}
	r.ApplyToEach([]core.Tag{"Position", "Velocity"}, func(e core.Entity) { calls[e]++ })
	assert.Equal(t, map[core.Entity]int{both: 1, extra: 1}, calls)

	var order []core.Entity
	r.ApplyToEach(nil, func(e core.Entity) { order = append(order, e) })
	assert.Equal(t, []core.Entity{both, onlyPos, onlyVel, extra}, order)

	called := false
	r.ApplyToEach([]core.Tag{"NeverSeen"}, func(core.Entity) { called = true })
	assert.False(t, called)
}

func TestApplyToEachRejectsMutation(t *testing.T) {
	r := NewRegistry()
	e := r.Create("a")
	require.NoError(t, r.Assign(newPos(e, 0, 0)))
	tags := []core.Tag{"Position"}

	cases := map[string]func(core.Entity){
		"create":  func(core.Entity) { r.Create("b") },
		"destroy": func(e core.Entity) { r.Destroy(e) },
		"add tag": func(e core.Entity) { _ = r.Assign(newVel(e, 1)) },
		"remove":  func(e core.Entity) { r.Remove(e, "Position") },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				rec := recover()
				require.NotNil(t, rec)
				err, ok := rec.(error)
				require.True(t, ok)
				assert.True(t, eris.Is(err, ErrMutationDuringIteration))
			}()
			r.ApplyToEach(tags, fn)
		})
	}

	assert.Nil(t, r.Store("Velocity"), "rejected assign allocates no tag")
	assert.False(t, r.Has(e, "Velocity"))

	// Overwrite keeps the tag set and stays legal
	assert.NotPanics(t, func() {
		r.ApplyToEach(tags, func(e core.Entity) { _ = r.Assign(newPos(e, 5, 5)) })
	})
	assert.Equal(t, 5, MustGet[*posComp](r, e).X)
	assert.Equal(t, 1, r.Count())
}

func TestDeferDestroy(t *testing.T) {
	r := NewRegistry()
	a := r.Create("a")
	b := r.Create("b")
	require.NoError(t, r.Assign(newPos(a, 0, 0)))
	require.NoError(t, r.Assign(newPos(b, 0, 0)))

	r.ApplyToEach([]core.Tag{"Position"}, func(e core.Entity) { r.DeferDestroy(e) })
	assert.Equal(t, 2, r.Count())

	assert.Equal(t, 2, r.FlushDestroyed())
	assert.Equal(t, 0, r.Count())
	assert.Equal(t, 0, r.Store("Position").Count())
	assert.Equal(t, 0, r.FlushDestroyed())
}

func TestGetByName(t *testing.T) {
	r := NewRegistry()
	first := r.Create("cow")
	r.Create("pig")
	second := r.Create("cow")

	assert.Equal(t, []core.Entity{first, second}, r.GetByName("cow"))
	got := r.GetByName("sheep")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	r.Destroy(first)
	assert.Equal(t, []core.Entity{second}, r.GetByName("cow"))
	name, ok := r.Name(second)
	assert.True(t, ok)
	assert.Equal(t, "cow", name)
}

func TestDestroyCleansStores(t *testing.T) {
	r := NewRegistry()
	e := r.Create("a")
	require.NoError(t, r.Assign(newPos(e, 0, 0)))
	require.NoError(t, r.Assign(newVel(e, 0)))

	assert.True(t, r.Destroy(e))
	assert.False(t, r.Destroy(e))
	assert.False(t, r.Alive(e))
	assert.False(t, r.Store("Position").Has(e))
	assert.False(t, r.Store("Velocity").Has(e))

	// Ids are never reused
	assert.NotEqual(t, e, r.Create("b"))
}

func TestRemove(t *testing.T) {
	r := NewRegistry()
	e := r.Create("a")
	require.NoError(t, r.Assign(newPos(e, 0, 0)))

	assert.True(t, r.Remove(e, "Position"))
	assert.False(t, r.Remove(e, "Position"))
	assert.False(t, r.Has(e, "Position"))
	m, ok := r.Mask(e)
	require.True(t, ok)
	assert.True(t, m.IsZero())
}

func TestQueryBuilder(t *testing.T) {
	r := NewRegistry()
	var both []core.Entity
	for i := 0; i < 10; i++ {
		e := r.Create("n")
		require.NoError(t, r.Assign(newPos(e, i, 0)))
		if i%3 == 0 {
			require.NoError(t, r.Assign(newVel(e, i)))
			both = append(both, e)
		}
	}
	// Swap-removal reorders the store; results stay in insertion order
	r.Remove(both[0], "Velocity")
	both = both[1:]

	q := r.Query().With("Position", "Velocity")
	assert.Equal(t, both, q.Execute())
	assert.Equal(t, both, q.Execute())
	assert.Panics(t, func() { q.With("Label") })

	assert.Empty(t, r.Query().Execute())
	assert.Empty(t, r.Query().With("Position", "Unknown").Execute())

	first, ok := r.Query().With("Velocity").First()
	require.True(t, ok)
	assert.Equal(t, both[0], first)
}

func TestMask(t *testing.T) {
	var m, sub Mask
	m.set(0)
	m.set(63)
	m.set(64)
	m.set(255)
	sub.set(64)
	sub.set(255)

	assert.True(t, m.Contains(sub))
	assert.False(t, sub.Contains(m))
	assert.True(t, m.Has(255))
	m.unset(255)
	assert.False(t, m.Contains(sub))
	assert.True(t, Mask{}.IsZero())
}

func TestTagOf(t *testing.T) {
	assert.Equal(t, core.Tag("Velocity"), TagOf[*velComp]())
}
