package input

// KeyState is press detector for analog or sampled buttons.
// Pressed -> Released -> Idle needs at least one idle sample before next press.
type KeyState uint8

const (
	KeyIdle KeyState = iota
	KeyPressed
	KeyReleased
)

func (s KeyState) String() string {
	switch s {
	case KeyIdle:
		return "Idle"
	case KeyPressed:
		return "Pressed"
	case KeyReleased:
		return "Released"
	}
	return "KeyState(?)"
}

func (s KeyState) Next(pressed bool) KeyState {
	switch s {
	case KeyIdle:
		if pressed {
			return KeyPressed
		}
		return KeyIdle
	case KeyPressed:
		if pressed {
			return KeyPressed
		}
		return KeyReleased
	case KeyReleased:
		if pressed {
			return KeyReleased
		}
		return KeyIdle
	}
	return KeyIdle
}

type KeyStateMachine struct {
	State KeyState
	Prev  KeyState
}

// Update returns true on press edge.
func (self *KeyStateMachine) Update(pressed bool) bool {
	self.Prev, self.State = self.State, self.State.Next(pressed)
	return self.JustPressed()
}

func (self *KeyStateMachine) JustPressed() bool {
	return self.State == KeyPressed && self.Prev != KeyPressed
}

// PressedAbove is threshold detector for raw ADC positions.
func PressedAbove(threshold int) func(int) bool {
	return func(pos int) bool { return pos > threshold }
}
