package dnd

import (
	"fmt"

	"go.uber.org/zap"
)

// globalDebug enables tree-operation checks. Set by Scene.SetDebugMode.
var globalDebug bool

// debugLogger receives tree warnings while debug mode is on.
var debugLogger = zap.NewNop()

// SetLogger sets the logger used for gesture tracing. A nil logger disables
// logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetDebugMode toggles debug checks. When enabled and no logger has been set,
// a development logger is installed so gesture transitions are printed.
// Disposed nodes used in tree operations panic, and deep trees or very wide
// nodes are reported as warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if !enabled {
		debugLogger = zap.NewNop()
		return
	}
	if s.logger.Core().Enabled(zap.DebugLevel) {
		debugLogger = s.logger
		return
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		// Keep the current logger; debug checks still run.
		debugLogger = s.logger
		return
	}
	s.logger = l.Named("dnd")
	debugLogger = s.logger
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("dnd debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth), zap.Int("threshold", debugMaxTreeDepth), zap.String("node", n.Name))
	}
}

const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold",
			zap.Int("children", len(n.children)), zap.Int("threshold", debugMaxChildCount), zap.String("node", n.Name))
	}
}
