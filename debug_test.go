package dnd

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedScene(t *testing.T) (*Scene, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScene()
	s.SetLogger(zap.New(core))
	t.Cleanup(func() { s.SetDebugMode(false) })
	return s, logs
}

func TestSetDebugMode(t *testing.T) {
	s, _ := observedScene(t)
	logger := s.Logger()

	s.SetDebugMode(true)
	if !globalDebug {
		t.Error("globalDebug not set")
	}
	if s.Logger() != logger || debugLogger != logger {
		t.Error("an enabled logger should be kept")
	}

	s.SetDebugMode(false)
	if globalDebug {
		t.Error("globalDebug still set")
	}
	if debugLogger.Core().Enabled(zap.ErrorLevel) {
		t.Error("debug logger should be a no-op when disabled")
	}
}

func TestSetLoggerNil(t *testing.T) {
	s := NewScene()
	s.SetLogger(nil)
	if s.Logger() == nil {
		t.Fatal("Logger is nil")
	}
	s.Logger().Info("discarded")
}

func TestDebugDisposedPanics(t *testing.T) {
	s, _ := observedScene(t)
	s.SetDebugMode(true)

	n := NewRect("gone", 1, 1, ColorWhite)
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.Root().AddChild(n)
}

func TestDebugTreeDepthWarning(t *testing.T) {
	s, logs := observedScene(t)
	s.SetDebugMode(true)

	parent := NewContainer("n0")
	for i := 1; i <= debugMaxTreeDepth; i++ {
		child := NewContainer("n")
		parent.AddChild(child)
		parent = child
	}
	if got := logs.FilterMessage("tree depth exceeds threshold").Len(); got != 1 {
		t.Errorf("depth warnings = %d, want 1", got)
	}
}

func TestGestureTracing(t *testing.T) {
	s, logs := observedScene(t)
	src := NewRect("src", 40, 40, ColorWhite)
	s.Root().AddChild(src)
	NewDraggable("card").Mount(s, src)

	s.InjectPress(10, 10)
	s.InjectMove(30, 10)
	s.InjectRelease(30, 10)
	drain(s)

	for _, msg := range []string{"gesture armed", "drag started", "drag ended"} {
		entries := logs.FilterMessage(msg).All()
		if len(entries) != 1 {
			t.Errorf("%q logged %d times, want 1", msg, len(entries))
			continue
		}
		if got := entries[0].ContextMap()["node"]; got != "src" {
			t.Errorf("%q node field = %v", msg, got)
		}
	}
}
