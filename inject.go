package dnd

type syntheticKind uint8

const (
	syntheticMouse syntheticKind = iota
	syntheticTouch
)

// syntheticEvent is a single injected input event in screen coordinates. It
// goes through the same path as polled input, so screen-to-world conversion
// and hit-testing behave identically.
type syntheticEvent struct {
	kind             syntheticKind
	phase            Phase
	screenX, screenY float64
	button           MouseButton
	touchID          int
}

func (s *Scene) injectMouse(phase Phase, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticMouse, phase: phase,
		screenX: x, screenY: y,
		button: MouseButtonLeft,
	})
}

func (s *Scene) injectTouchEvent(phase Phase, id int, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticTouch, phase: phase,
		screenX: x, screenY: y,
		touchID: id,
	})
}

// InjectPress queues a left-button press at the given screen coordinates.
// Each queued event is consumed by one Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectMouse(PhaseDown, x, y)
}

// InjectMove queues a pointer move to the given screen coordinates.
func (s *Scene) InjectMove(x, y float64) {
	s.injectMouse(PhaseMove, x, y)
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectMouse(PhaseUp, x, y)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), moves
// linearly interpolated over frames-2 intermediate frames, a move to
// (toX, toY), and a release there. Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMove(toX, toY)
	s.InjectRelease(toX, toY)
}

// InjectTouchStart queues a finger touching down at the given screen
// coordinates.
func (s *Scene) InjectTouchStart(id int, x, y float64) {
	s.injectTouchEvent(PhaseDown, id, x, y)
}

// InjectTouchMove queues a move of an injected finger.
func (s *Scene) InjectTouchMove(id int, x, y float64) {
	s.injectTouchEvent(PhaseMove, id, x, y)
}

// InjectTouchEnd queues an injected finger lifting at the given point.
func (s *Scene) InjectTouchEnd(id int, x, y float64) {
	s.injectTouchEvent(PhaseUp, id, x, y)
}

// InjectTouchCancel queues the cancellation of an injected finger.
func (s *Scene) InjectTouchCancel(id int) {
	s.injectTouchEvent(PhaseCancel, id, 0, 0)
}

// PendingInput returns the number of injected events not yet consumed.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and delivers it.
// Returns true if an event was consumed, in which case polling is skipped.
func (s *Scene) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.kind == syntheticMouse {
		s.HandleMouse(MouseInput{
			Phase: evt.phase, X: evt.screenX, Y: evt.screenY,
			Button: evt.button, Modifiers: mods,
		})
		return true
	}

	t := Touch{ID: evt.touchID, X: evt.screenX, Y: evt.screenY}
	switch evt.phase {
	case PhaseDown:
		s.injectTouch = append(s.injectTouch, t)
	case PhaseMove:
		for i := range s.injectTouch {
			if s.injectTouch[i].ID == t.ID {
				s.injectTouch[i] = t
			}
		}
	case PhaseUp, PhaseCancel:
		if evt.phase == PhaseCancel {
			if prev, ok := findTouch(s.injectTouch, t.ID); ok {
				t = prev
			}
		}
		kept := s.injectTouch[:0]
		for _, cur := range s.injectTouch {
			if cur.ID != t.ID {
				kept = append(kept, cur)
			}
		}
		s.injectTouch = kept
	}
	s.HandleTouch(TouchInput{
		Phase:     evt.phase,
		Touches:   append([]Touch(nil), s.injectTouch...),
		Changed:   []Touch{t},
		Modifiers: mods,
	})
	return true
}
