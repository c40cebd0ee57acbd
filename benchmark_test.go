package salinity

import "testing"

// setupBenchScene creates a scene with n boxes laid out on a 100-wide grid.
func setupBenchScene(n int) *Node {
	scene := NewGroup("scene")
	for i := 0; i < n; i++ {
		b := NewBoxNode("b")
		b.Box = NewBox(-16, -16, 16, 16)
		b.Position = Vec2{float64(i%100) * 40, float64(i/100) * 40}
		scene.Add(b)
	}
	return scene
}

func BenchmarkRender_10000Boxes_Static(b *testing.B) {
	scene := setupBenchScene(10000)
	s := newRecordSurface(1280, 720)
	r := NewRenderer(s, DefaultConfig())
	cam := NewCamera()

	r.Render(scene, cam, 1.0/60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.reset()
		r.Render(scene, cam, 1.0/60)
	}
}

func BenchmarkRender_10000Boxes_Rotating(b *testing.B) {
	scene := setupBenchScene(10000)
	s := newRecordSurface(1280, 720)
	r := NewRenderer(s, DefaultConfig())
	cam := NewCamera()
	kids := scene.Children()

	r.Render(scene, cam, 1.0/60)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, k := range kids {
			k.Rotation += 0.01
		}
		s.reset()
		r.Render(scene, cam, 1.0/60)
	}
}

func BenchmarkUpdateTree_Deep(b *testing.B) {
	root := NewGroup("root")
	cur := root
	for i := 0; i < 200; i++ {
		child := NewGroup("g")
		child.Position = Vec2{1, 0}
		cur.Add(child)
		cur = child
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		root.UpdateTree(true)
	}
}

func BenchmarkWorldPointIntersections_10000(b *testing.B) {
	scene := setupBenchScene(10000)
	scene.UpdateTree(true)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		scene.WorldPointIntersections(Vec2{2000, 2000})
	}
}
