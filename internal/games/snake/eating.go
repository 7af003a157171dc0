package snake

// eat removes every food under the head and raises one grow signal per food.
func (s *State) eat() {
	head := s.head().Pos
	for _, id := range s.world.OfKind(KindFood) {
		if s.world.MustGet(id).Pos != head {
			continue
		}
		s.world.Despawn(id)
		s.signals.EmitGrow(GrowSignal{At: head})
	}
}
