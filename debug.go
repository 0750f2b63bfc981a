package scanline

import (
	"fmt"
	"os"
	"time"
)

// FrameStats holds per-frame counters. Timings are only measured when the
// scene is in debug mode.
type FrameStats struct {
	Nodes        int  // nodes placed on the position list
	Lines        int  // lines swept
	Transfers    int  // rows handed to the display
	RenderBounds Rect // area recomposited this frame

	TraverseTime time.Duration
	SweepTime    time.Duration
}

// debugLog prints timing and sweep stats to stderr.
func (s *Scene) debugLog(stats FrameStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[scanline] traverse: %v | sweep: %v | total: %v\n",
		stats.TraverseTime, stats.SweepTime, stats.TraverseTime+stats.SweepTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[scanline] nodes: %d | lines: %d | transfers: %d | bounds: %v\n",
		stats.Nodes, stats.Lines, stats.Transfers, stats.RenderBounds)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[scanline] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 256 children.
// Every child costs a list element per frame.
const debugMaxChildCount = 256

func debugCheckChildCount(n *Node) {
	if c := n.NumChildren(); c > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[scanline] warning: node %q has %d children (threshold %d)\n",
			n.Name, c, debugMaxChildCount)
	}
}

// debugBorder reports whether (x, y) lies on the outline of r.
func debugBorder(r Rect, x, y int) bool {
	return y == r.Y || y == r.Y2 || x == r.X || x == r.X2
}
