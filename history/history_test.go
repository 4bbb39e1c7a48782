package history

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/annotate/geom"
	"github.com/gogpu/annotate/traits"
)

func rectItem(r geom.Rect) *traits.Traits {
	p := geom.NewPath()
	p.Rectangle(r)
	t := &traits.Traits{
		Geometry: &traits.Geometry{Path: p},
		Stroke:   &traits.Stroke{Width: 2, Color: color.Black},
	}
	t.Init()
	return t
}

func lineItem(a, b geom.Point) *traits.Traits {
	p := geom.NewPath()
	p.Polyline(a, b)
	t := &traits.Traits{
		Geometry: &traits.Geometry{Path: p},
		Stroke:   &traits.Stroke{Width: 2, Color: color.Black},
	}
	t.Init()
	return t
}

func invalidItem() *traits.Traits {
	t := &traits.Traits{
		Geometry: &traits.Geometry{Path: geom.NewPathAt(geom.Pt(1, 1))},
		Stroke:   &traits.Stroke{Width: 2, Color: color.Black},
	}
	t.Init()
	return t
}

func deleteItem() *traits.Traits {
	return &traits.Traits{Delete: &traits.Delete{}}
}

func TestPushUndoRedo(t *testing.T) {
	h := New()
	a, c := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	assert.Equal(t, Changes{Undo: true}, c)
	b, _ := h.Push(rectItem(geom.NewRect(20, 0, 10, 10)), Handle{})

	assert.Equal(t, b, h.Current())
	assert.Equal(t, []Handle{a, b}, h.UndoList())

	require.True(t, h.Undo())
	assert.Equal(t, a, h.Current())
	assert.Equal(t, []Handle{b}, h.RedoList())
	assert.True(t, h.Alive(b), "undone items are retained")
	assert.False(t, h.InUndo(b))
	assert.False(t, h.ItemVisible(b))

	require.True(t, h.Redo())
	assert.Equal(t, b, h.Current())
	assert.True(t, h.ItemVisible(b))

	assert.True(t, h.Undo())
	assert.True(t, h.Undo())
	assert.False(t, h.Undo(), "undo on an empty sequence")
	assert.True(t, h.Current().IsZero())
	assert.Equal(t, []Handle{b, a}, h.RedoList(), "redo is reverse chronological")

	assert.True(t, h.Redo())
	assert.Equal(t, a, h.Current())
}

func TestRedoOnEmpty(t *testing.T) {
	h := New()
	assert.False(t, h.Redo())
	_, redoChanged := h.Pop()
	assert.False(t, redoChanged)
}

func TestPushClearsRedo(t *testing.T) {
	h := New()
	h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	b, _ := h.Push(rectItem(geom.NewRect(20, 0, 10, 10)), Handle{})
	h.Undo()
	h.Undo()

	_, c := h.Push(rectItem(geom.NewRect(40, 0, 10, 10)), Handle{})
	assert.Equal(t, Changes{Undo: true, Redo: true}, c)
	assert.Equal(t, 0, h.RedoLen())
	assert.False(t, h.Alive(b), "cleared redo items are released")
}

func TestPushNil(t *testing.T) {
	h := New()
	hd, c := h.Push(nil, Handle{})
	assert.True(t, hd.IsZero())
	assert.Equal(t, Changes{}, c)
	assert.Equal(t, 0, h.UndoLen())
}

func TestPushDiscardsInvalidTail(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	bad, _ := h.Push(invalidItem(), Handle{})
	require.False(t, h.IsValid(bad))

	c, _ := h.Push(rectItem(geom.NewRect(20, 0, 10, 10)), Handle{})
	assert.Equal(t, []Handle{a, c}, h.UndoList())
	assert.False(t, h.Alive(bad))
}

func TestSequenceLengthOnlyChangesByPushPopClear(t *testing.T) {
	h := New()
	total := func() int { return h.UndoLen() + h.RedoLen() }
	for i := 0; i < 4; i++ {
		h.Push(rectItem(geom.NewRect(float64(i*20), 0, 10, 10)), Handle{})
	}
	require.Equal(t, 4, total())
	for _, op := range []func() bool{h.Undo, h.Undo, h.Redo, h.Undo, h.Undo, h.Undo, h.Undo, h.Redo} {
		op()
		assert.Equal(t, 4, total())
	}
	h.Pop()
	assert.Equal(t, 3, total())
	h.ClearLists()
	assert.Equal(t, 0, total())
}

func TestReplaceChainVisibility(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	b, _ := h.Push(rectItem(geom.NewRect(5, 5, 10, 10)), a)

	child, ok := h.Child(a)
	require.True(t, ok)
	assert.Equal(t, b, child)
	parent, ok := h.Parent(b)
	require.True(t, ok)
	assert.Equal(t, a, parent)

	assert.False(t, h.ItemVisible(a), "replaced by a child on the undo sequence")
	assert.True(t, h.ItemVisible(b))

	h.Undo()
	assert.True(t, h.ItemVisible(a), "undoing the edit restores the parent")
	assert.False(t, h.ItemVisible(b))

	h.Redo()
	assert.False(t, h.ItemVisible(a))
	assert.True(t, h.ItemVisible(b))
}

func TestDeleteItemRenderRect(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	d, _ := h.Push(deleteItem(), a)

	assert.True(t, h.IsValid(d))
	assert.False(t, h.ItemVisible(a))
	assert.False(t, h.ItemVisible(d))
	assert.Equal(t, h.RenderRect(a), h.RenderRect(d), "a deletion covers its parent's area")
	assert.False(t, h.RenderRect(d).IsEmpty())
}

func TestPopInvalidatesRedoDescendants(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	b, _ := h.Push(rectItem(geom.NewRect(0, 0, 20, 20)), a)
	c, _ := h.Push(rectItem(geom.NewRect(0, 0, 30, 30)), b)
	unrelated, _ := h.Push(rectItem(geom.NewRect(50, 50, 5, 5)), Handle{})
	h.Undo() // unrelated
	h.Undo() // c
	h.Undo() // b
	require.Equal(t, []Handle{unrelated, c, b}, h.RedoList())

	popped, redoChanged := h.Pop()
	require.NotNil(t, popped)
	assert.True(t, redoChanged)
	assert.False(t, h.Alive(a))
	assert.False(t, h.Alive(b), "child of a popped item is discarded")
	assert.False(t, h.Alive(c), "grandchild is discarded in the same pass")
	assert.Equal(t, []Handle{unrelated}, h.RedoList())
}

func TestPopReturnsTraits(t *testing.T) {
	h := New()
	tr := rectItem(geom.NewRect(0, 0, 10, 10))
	a, _ := h.Push(tr, Handle{})
	popped, redoChanged := h.Pop()
	assert.Same(t, tr, popped)
	assert.False(t, redoChanged)
	assert.False(t, h.Alive(a))
	assert.Nil(t, h.Traits(a))
	assert.False(t, h.IsValid(a))
	assert.True(t, h.RenderRect(a).IsNull())
}

func TestHandleReuseExpiresOldHandles(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	h.Pop()
	b, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	assert.Equal(t, a.index, b.index, "the slot is reused")
	assert.NotEqual(t, a, b)
	assert.False(t, h.Alive(a))
	assert.True(t, h.Alive(b))
}

func TestOrphanIsInvalid(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	h.Pop()
	b, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), a)
	assert.False(t, h.IsValid(b), "parent expired")
	_, ok := h.Parent(b)
	assert.False(t, ok)
}

func TestFilteredListsAndClear(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	b, _ := h.Push(rectItem(geom.NewRect(20, 0, 10, 10)), Handle{})
	c, _ := h.Push(rectItem(geom.NewRect(40, 0, 10, 10)), Handle{})
	h.Undo()

	undo, redo := h.FilteredLists(func(hd Handle) bool { return hd != b })
	assert.Equal(t, []Handle{a}, undo)
	assert.Equal(t, []Handle{c}, redo)

	assert.True(t, h.ClearRedo())
	assert.False(t, h.ClearRedo())
	assert.Equal(t, Changes{Undo: true}, h.ClearLists())
	assert.Equal(t, Changes{}, h.ClearLists())
	assert.False(t, h.Alive(a))
}

func TestItemAt(t *testing.T) {
	h := New()
	below, _ := h.Push(rectItem(geom.NewRect(0, 0, 100, 100)), Handle{})
	above, _ := h.Push(rectItem(geom.NewRect(40, 40, 20, 20)), Handle{})
	line, _ := h.Push(lineItem(geom.Pt(200, 0), geom.Pt(300, 0)), Handle{})

	got, ok := h.ItemAt(geom.PointRect(geom.Pt(50, 50)))
	require.True(t, ok)
	assert.Equal(t, above, got, "most recent item wins")

	got, ok = h.ItemAt(geom.PointRect(geom.Pt(10, 10)))
	require.True(t, ok)
	assert.Equal(t, below, got)

	_, ok = h.ItemAt(geom.PointRect(geom.Pt(250, 5)))
	assert.False(t, ok, "an exact miss with a point query")

	got, ok = h.ItemAt(geom.NewRect(245, 0, 10, 10))
	require.True(t, ok, "the ellipse fallback reaches the thin line")
	assert.Equal(t, line, got)

	h.Undo()
	_, ok = h.ItemAt(geom.NewRect(245, 0, 10, 10))
	assert.False(t, ok, "undone items are not hit")

	_, ok = h.ItemAt(geom.PointRect(geom.Pt(500, 500)))
	assert.False(t, ok)
}

func TestItemAtSkipsReplacedItems(t *testing.T) {
	h := New()
	a, _ := h.Push(rectItem(geom.NewRect(0, 0, 10, 10)), Handle{})
	moved, _ := h.Push(rectItem(geom.NewRect(100, 100, 10, 10)), a)

	_, ok := h.ItemAt(geom.PointRect(geom.Pt(5, 5)))
	assert.False(t, ok, "the replaced item no longer hits")

	got, ok := h.ItemAt(geom.PointRect(geom.Pt(105, 105)))
	require.True(t, ok)
	assert.Equal(t, moved, got)
}
