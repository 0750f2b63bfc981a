package scanline

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// setupBenchScene creates a 160x128 scene (an ST7735 panel) with n boxes laid
// out in a grid, alternating solid, gradient and bordered fills.
func setupBenchScene(n int) (*Scene, *LineBuffer, []*Node) {
	s := NewScene()
	buf := NewLineBuffer(NewMemoryDisplay(160, 128))
	nodes := make([]*Node, 0, n)
	for i := 0; i < n; i++ {
		var b *Box
		switch i % 3 {
		case 0:
			b = NewBox(RGB(uint8(i*7), 80, 160))
		case 1:
			b = NewGradientBox(NewLinearGradient(ColorRed, ColorBlue))
		default:
			b = NewBox(ColorGreen)
			b.Borders = UniformBorders(1, ColorWhite, 1)
		}
		node := s.NewNode("box", b)
		node.SetBounds((i%16)*10, (i/16)*10, 12, 12)
		s.Root().AddChild(node)
		nodes = append(nodes, node)
	}
	return s, buf, nodes
}

// --- Render Benchmarks ---

func BenchmarkRender_200Boxes_Full(b *testing.B) {
	s, buf, _ := setupBenchScene(200)
	_ = s.Render(buf) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Root().MarkDirty()
		_ = s.Render(buf)
	}
}

func BenchmarkRender_200Boxes_Clean(b *testing.B) {
	s, buf, _ := setupBenchScene(200)
	_ = s.Render(buf)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = s.Render(buf)
	}
}

func BenchmarkRender_200Boxes_OneMoving(b *testing.B) {
	s, buf, nodes := setupBenchScene(200)
	_ = s.Render(buf)
	mover := nodes[len(nodes)/2]

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		mover.SetX(i % 150)
		_ = s.Render(buf)
	}
}

func BenchmarkRender_200Boxes_AlphaVarying(b *testing.B) {
	s, buf, nodes := setupBenchScene(200)
	_ = s.Render(buf)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j, n := range nodes {
			n.SetAlpha(float32((i+j)%10+1) / 10)
		}
		_ = s.Render(buf)
	}
}

func BenchmarkRender_Async(b *testing.B) {
	s := NewScene()
	async := NewAsyncDisplay(NewMemoryDisplay(160, 128), AsyncConfig{})
	defer async.Close()
	buf := NewLineBuffer(async)
	for i := 0; i < 50; i++ {
		n := s.NewNode("box", NewBox(ColorRed))
		n.SetBounds((i%10)*16, (i/10)*16, 14, 14)
		s.Root().AddChild(n)
	}
	_ = s.Render(buf)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Root().MarkDirty()
		_ = s.Render(buf)
	}
}

func BenchmarkTween_100Nodes(b *testing.B) {
	s, _, nodes := setupBenchScene(100)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if s.NumTweens() == 0 {
			for _, n := range nodes {
				s.AddTween(TweenPosition(n, (n.X()+40)%150, n.Y(), 1, ease.InOutQuad))
			}
		}
		s.Update(1.0 / 60)
	}
}

func BenchmarkListInsertByPosition_1000(b *testing.B) {
	pool := NewPool(nil, resetListElem, 1024)
	nodes := make([]*Node, 1000)
	for i := range nodes {
		nodes[i] = nodeAt("n", (i*37)%160, (i*53)%128, 0)
	}
	l := newDisplayList(pool)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, n := range nodes {
			l.InsertByPosition(n)
		}
		l.Recycle()
	}
}
