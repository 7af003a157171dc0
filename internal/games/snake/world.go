package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Kind tags what an entity is.
type Kind uint8

const (
	KindHead Kind = iota + 1
	KindSegment
	KindFood
)

func (k Kind) String() string {
	switch k {
	case KindHead:
		return "head"
	case KindSegment:
		return "segment"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// EntityID addresses a slot in the World. The generation makes ids of
// despawned entities permanently stale, even after the slot is reused.
// The zero EntityID never resolves.
type EntityID struct {
	index uint32
	gen   uint32
}

// Valid reports whether the id was ever issued by a World.
func (id EntityID) Valid() bool {
	return id.gen != 0
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d#%d", id.index, id.gen)
}

// Entity is the data held for every game object.
type Entity struct {
	Kind  Kind
	Pos   Position
	Size  Size
	Color core.Color
}

type slot struct {
	entity Entity
	gen    uint32
	alive  bool
}

// World is an arena of entities indexed by stable ids.
// It is not safe for concurrent use; the tick pipeline owns it.
type World struct {
	slots []slot
	free  []uint32
	live  int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		slots: make([]slot, 0, 64),
	}
}

// Spawn stores e and returns its id. Freed slots are reused first.
func (w *World) Spawn(e Entity) EntityID {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.slots = append(w.slots, slot{})
		idx = uint32(len(w.slots) - 1) //nolint:gosec // slot count never approaches 2^32
	}

	s := &w.slots[idx]
	s.gen++
	s.entity = e
	s.alive = true
	w.live++

	return EntityID{index: idx, gen: s.gen}
}

// Despawn removes the entity. Returns false if the id was stale.
func (w *World) Despawn(id EntityID) bool {
	s, ok := w.slot(id)
	if !ok {
		return false
	}
	s.alive = false
	s.entity = Entity{}
	w.free = append(w.free, id.index)
	w.live--
	return true
}

// Get returns a pointer to the live entity.
// The pointer is valid until the next Spawn.
func (w *World) Get(id EntityID) (*Entity, bool) {
	s, ok := w.slot(id)
	if !ok {
		return nil, false
	}
	return &s.entity, true
}

// MustGet is Get for ids the caller guarantees are live.
func (w *World) MustGet(id EntityID) *Entity {
	e, ok := w.Get(id)
	if !ok {
		panic(fmt.Sprintf("snake: entity %s is not alive", id))
	}
	return e
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.slot(id)
	return ok
}

// OfKind returns the ids of all live entities of kind k in slot order.
func (w *World) OfKind(k Kind) []EntityID {
	var ids []EntityID
	for i := range w.slots {
		s := &w.slots[i]
		if s.alive && s.entity.Kind == k {
			ids = append(ids, EntityID{index: uint32(i), gen: s.gen}) //nolint:gosec // bounded by slot count
		}
	}
	return ids
}

// DespawnKinds removes every live entity whose kind is listed.
// Returns the number of entities removed.
func (w *World) DespawnKinds(kinds ...Kind) int {
	removed := 0
	for _, k := range kinds {
		for _, id := range w.OfKind(k) {
			if w.Despawn(id) {
				removed++
			}
		}
	}
	return removed
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.live
}

func (w *World) slot(id EntityID) (*slot, bool) {
	if !id.Valid() || int(id.index) >= len(w.slots) {
		return nil, false
	}
	s := &w.slots[id.index]
	if !s.alive || s.gen != id.gen {
		return nil, false
	}
	return s, true
}
