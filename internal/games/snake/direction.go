package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Direction is the heading of the snake.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Delta returns the one-cell step for the direction.
func (d Direction) Delta() Position {
	switch d {
	case Left:
		return Position{X: -1}
	case Right:
		return Position{X: 1}
	case Up:
		return Position{Y: 1}
	default:
		return Position{Y: -1}
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Intent is the latest directional request sampled from input.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentUp
	IntentRight
	IntentDown
)

// Direction returns the requested direction, or false for IntentNone.
func (i Intent) Direction() (Direction, bool) {
	switch i {
	case IntentLeft:
		return Left, true
	case IntentUp:
		return Up, true
	case IntentRight:
		return Right, true
	case IntentDown:
		return Down, true
	}
	return 0, false
}

// IntentFromAction maps a platform action to an intent.
// Non-directional actions map to IntentNone.
func IntentFromAction(a core.Action) Intent {
	switch a {
	case core.ActionLeft:
		return IntentLeft
	case core.ActionUp:
		return IntentUp
	case core.ActionRight:
		return IntentRight
	case core.ActionDown:
		return IntentDown
	}
	return IntentNone
}

// ResolveDirection applies an intent to the current heading.
// No intent keeps the heading; an intent for the opposite direction is
// rejected because reversing into the neck is always fatal.
func ResolveDirection(current Direction, intent Intent) Direction {
	want, ok := intent.Direction()
	if !ok || want == current.Opposite() {
		return current
	}
	return want
}
