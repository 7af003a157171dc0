package snake

import "testing"

func TestWorldSpawnGet(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(Entity{Kind: KindFood, Pos: Position{X: 1, Y: 2}})

	e, ok := w.Get(id)
	if !ok {
		t.Fatal("spawned entity should resolve")
	}
	if e.Kind != KindFood || e.Pos != (Position{X: 1, Y: 2}) {
		t.Errorf("entity = %+v", *e)
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d, want 1", w.Len())
	}
}

func TestWorldDespawnMakesIDStale(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(Entity{Kind: KindFood})

	if !w.Despawn(id) {
		t.Fatal("Despawn of a live id should succeed")
	}
	if w.Despawn(id) {
		t.Error("second Despawn should report a stale id")
	}
	if w.Alive(id) {
		t.Error("despawned id should not be alive")
	}

	reused := w.Spawn(Entity{Kind: KindSegment})
	if reused.index != id.index {
		t.Errorf("slot %d not reused, got %d", id.index, reused.index)
	}
	if w.Alive(id) {
		t.Error("old id must not resolve to the reused slot")
	}
	if e, _ := w.Get(reused); e.Kind != KindSegment {
		t.Errorf("reused slot holds %v", e.Kind)
	}
}

func TestWorldZeroIDNeverResolves(t *testing.T) {
	w := NewWorld()
	w.Spawn(Entity{Kind: KindHead})

	var zero EntityID
	if zero.Valid() || w.Alive(zero) {
		t.Error("zero EntityID should never resolve")
	}
}

func TestWorldMustGetPanics(t *testing.T) {
	w := NewWorld()
	id := w.Spawn(Entity{Kind: KindHead})
	w.Despawn(id)

	defer func() {
		if recover() == nil {
			t.Error("MustGet on a dead id should panic")
		}
	}()
	w.MustGet(id)
}

func TestWorldOfKindAndDespawnKinds(t *testing.T) {
	w := NewWorld()
	w.Spawn(Entity{Kind: KindHead})
	w.Spawn(Entity{Kind: KindSegment})
	w.Spawn(Entity{Kind: KindSegment})
	food := w.Spawn(Entity{Kind: KindFood})

	if n := len(w.OfKind(KindSegment)); n != 2 {
		t.Errorf("OfKind(segment) = %d, want 2", n)
	}

	if n := w.DespawnKinds(KindHead, KindSegment); n != 3 {
		t.Errorf("DespawnKinds removed %d, want 3", n)
	}
	if w.Len() != 1 || !w.Alive(food) {
		t.Errorf("only the food should remain, Len = %d", w.Len())
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindHead: "head", KindSegment: "segment", KindFood: "food", Kind(0): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
