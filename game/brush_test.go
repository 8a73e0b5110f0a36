package game

import (
	"testing"

	"github.com/pthm-cable/fluid/viewport"
)

func TestBrushStroke(t *testing.T) {
	vp := viewport.New(800, 600, 300, 200)
	b := brush{velocityScale: 2}

	if _, ok := b.move(vp, 100, 100); ok {
		t.Error("stroke reported without a drag")
	}

	b.begin(400, 300)
	if _, ok := b.move(vp, 400, 300); ok {
		t.Error("stroke reported without movement")
	}

	st, ok := b.move(vp, 410, 295)
	if !ok {
		t.Fatal("expected a stroke")
	}
	want := stroke{X: 153, Y: 98, DX: 20, DY: -10}
	if st != want {
		t.Errorf("stroke = %+v, want %+v", st, want)
	}

	// Leaving the window drops the stroke but keeps tracking the cursor.
	if _, ok := b.move(vp, 900, 295); ok {
		t.Error("stroke outside the window")
	}
	st, ok = b.move(vp, 790, 295)
	if !ok || st.DX != -220 {
		t.Errorf("re-entry stroke = %+v, %v; want DX -220", st, ok)
	}

	b.end()
	if _, ok := b.move(vp, 10, 10); ok {
		t.Error("stroke after end")
	}
}
