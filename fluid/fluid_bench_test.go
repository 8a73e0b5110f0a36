package fluid

import "testing"

func BenchmarkStep(b *testing.B) {
	s, err := New(300, 200, 0.0000001, 0.0000001, 0.016)
	if err != nil {
		b.Fatal(err)
	}
	_ = s.CreateExplosion(150, 100, 100, 0, 0, 255)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step()
	}
}

func BenchmarkPixels(b *testing.B) {
	s, err := New(300, 200, 0, 0, 0.016)
	if err != nil {
		b.Fatal(err)
	}
	var buf []byte

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = s.Pixels(buf)
	}
}
