package gpucore

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestIdentity4(t *testing.T) {
	m := Identity4()
	if !m.IsIdentity() {
		t.Fatal("Identity4 is not identity")
	}
	x, y := m.TransformPoint(3, -2)
	if x != 3 || y != -2 {
		t.Errorf("TransformPoint = (%v, %v), want (3, -2)", x, y)
	}
}

func TestOrthoMapsCornersToClipSpace(t *testing.T) {
	m := Ortho(-1, 3, -4, 2, -1, 1)

	tests := []struct {
		name   string
		x, y   float32
		wx, wy float32
	}{
		{"bottom-left", -1, -4, -1, -1},
		{"top-right", 3, 2, 1, 1},
		{"center", 1, -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := m.TransformPoint(tt.x, tt.y)
			if math.Abs(float64(x-tt.wx)) > 1e-6 || math.Abs(float64(y-tt.wy)) > 1e-6 {
				t.Errorf("TransformPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestOrthoDegenerateAxis(t *testing.T) {
	m := Ortho(2, 2, 0, 10, -1, 1)
	if m[0] != 0 || m[12] != 0 {
		t.Errorf("degenerate x extent produced scale %v offset %v, want 0 0", m[0], m[12])
	}
	if math.IsNaN(float64(m[5])) || math.IsInf(float64(m[5]), 0) {
		t.Errorf("y scale = %v, want finite", m[5])
	}
}

func TestMat4Mul(t *testing.T) {
	tr := Translate4(5, 6, 0)
	sc := Scale4(2, 3, 1)

	// Scale first, then translate.
	m := tr.Mul(sc)
	x, y := m.TransformPoint(1, 1)
	if x != 7 || y != 9 {
		t.Errorf("(T*S)(1,1) = (%v, %v), want (7, 9)", x, y)
	}

	if got := Identity4().Mul(m); got != m {
		t.Errorf("I*M != M")
	}
}

func TestMat4Bytes(t *testing.T) {
	m := Translate4(1.5, -2, 0)
	b := m.Bytes()
	if len(b) != Mat4Size {
		t.Fatalf("len(Bytes) = %d, want %d", len(b), Mat4Size)
	}
	for i := range m {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		if got != m[i] {
			t.Errorf("element %d = %v, want %v", i, got, m[i])
		}
	}
}

func TestModeTopology(t *testing.T) {
	tests := []struct {
		mode Mode
		want gputypes.PrimitiveTopology
		name string
	}{
		{ModeLineStrip, gputypes.PrimitiveTopologyLineStrip, "LineStrip"},
		{ModePoints, gputypes.PrimitiveTopologyPointList, "Points"},
		{ModeLines, gputypes.PrimitiveTopologyLineList, "Lines"},
	}
	for _, tt := range tests {
		if got := tt.mode.Topology(); got != tt.want {
			t.Errorf("%v.Topology() = %v, want %v", tt.mode, got, tt.want)
		}
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if !tt.mode.Valid() {
			t.Errorf("%v.Valid() = false", tt.mode)
		}
	}
	if Mode(9).Valid() {
		t.Error("Mode(9).Valid() = true")
	}
}

func TestUsageBufferUsage(t *testing.T) {
	for _, u := range []Usage{UsageDynamic, UsageStatic} {
		flags := u.BufferUsage()
		if flags&gputypes.BufferUsageVertex == 0 {
			t.Errorf("%v: missing Vertex usage", u)
		}
		if flags&gputypes.BufferUsageCopyDst == 0 {
			t.Errorf("%v: missing CopyDst usage", u)
		}
	}
}
