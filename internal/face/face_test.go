package face

import (
	"encoding/json"
	"math"
	"testing"

	"box-net-renderer/internal/box"
	"box-net-renderer/internal/mathutil"
)

var dims = box.Dimensions{Width: 2, Height: 3, Depth: 1}

func cross(a, b mathutil.Vec3) mathutil.Vec3 {
	return mathutil.Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func TestCanonicalOrder(t *testing.T) {
	want := [Count]string{"right", "left", "top", "bottom", "front", "back"}
	if got := Keys(); got != want {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i, f := range All {
		if int(f) != i {
			t.Errorf("All[%d] = %d", i, f)
		}
		got, ok := ParseKey(want[i])
		if !ok || got != f {
			t.Errorf("ParseKey(%q) = %v, %v", want[i], got, ok)
		}
	}
	if _, ok := ParseKey("lid"); ok {
		t.Error("ParseKey(lid) should fail")
	}
}

func TestExtentExcludesOwnAxis(t *testing.T) {
	tests := []struct {
		face Index
		w, h float64
	}{
		{Right, 1, 3},
		{Left, 1, 3},
		{Top, 2, 1},
		{Bottom, 2, 1},
		{Front, 2, 3},
		{Back, 2, 3},
	}
	for _, tt := range tests {
		w, h := Extent(tt.face, dims)
		if w != tt.w || h != tt.h {
			t.Errorf("Extent(%v) = (%v, %v), want (%v, %v)", tt.face, w, h, tt.w, tt.h)
		}
	}
}

func TestExtentMatchesAxes(t *testing.T) {
	d := dims.Vec()
	for _, f := range All {
		w, h := Extent(f, dims)
		hAxis, vAxis := Horizontal(f), Vertical(f)
		gotW := math.Abs(hAxis.Dot(d))
		gotH := math.Abs(vAxis.Dot(d))
		if gotW != w || gotH != h {
			t.Errorf("%v: axes span (%v, %v), Extent (%v, %v)", f, gotW, gotH, w, h)
		}
		if n := Normal(f); math.Abs(n.Dot(hAxis))+math.Abs(n.Dot(vAxis)) != 0 {
			t.Errorf("%v: in-plane axes are not perpendicular to the normal", f)
		}
	}
}

func TestBaseCenter(t *testing.T) {
	const eps = 0.002
	for _, f := range All {
		c := BaseCenter(f, dims, eps)
		nonzero := 0
		for k := 0; k < 3; k++ {
			if c[k] != 0 {
				nonzero++
				want := dims.Axis(k)/2 + eps
				if math.Abs(math.Abs(c[k])-want) > 1e-15 {
					t.Errorf("%v: |c[%d]| = %v, want %v", f, k, math.Abs(c[k]), want)
				}
			}
		}
		if nonzero != 1 {
			t.Errorf("%v: BaseCenter = %v has %d nonzero coordinates", f, c, nonzero)
		}
		if c.Dot(Normal(f)) <= 0 {
			t.Errorf("%v: BaseCenter %v is not on the outward side", f, c)
		}
	}
}

func TestRotationTable(t *testing.T) {
	ex := mathutil.Vec3{1, 0, 0}
	ey := mathutil.Vec3{0, 1, 0}
	ez := mathutil.Vec3{0, 0, 1}
	for _, f := range All {
		r := Rotation(f)
		if r.MulVec3(ex) != Horizontal(f) {
			t.Errorf("%v: R·x = %v, want %v", f, r.MulVec3(ex), Horizontal(f))
		}
		if r.MulVec3(ey) != Vertical(f) {
			t.Errorf("%v: R·y = %v, want %v", f, r.MulVec3(ey), Vertical(f))
		}
		if r.MulVec3(ez) != Normal(f) {
			t.Errorf("%v: R·z = %v, want %v", f, r.MulVec3(ez), Normal(f))
		}
		if c := cross(Horizontal(f), Vertical(f)); c != Normal(f) {
			t.Errorf("%v: horizontal × vertical = %v, want %v", f, c, Normal(f))
		}
		h, v, n := Horizontal(f), Vertical(f), Normal(f)
		if h.Dot(v) != 0 || v.Dot(n) != 0 || n.Dot(h) != 0 || h.Dot(h) != 1 || v.Dot(v) != 1 {
			t.Errorf("%v: face axes are not orthonormal", f)
		}
		if euler := mathutil.EulerToMat3(Euler(f)); !euler.ApproxEqual(r, 1e-12) {
			t.Errorf("%v: Euler %v gives %v, want %v", f, Euler(f), euler, r)
		}
		if q := mathutil.QuatToMat3(mathutil.EulerToQuat(Euler(f)[0], Euler(f)[1], Euler(f)[2])); !q.ApproxEqual(r, 1e-12) {
			t.Errorf("%v: quaternion gives %v, want %v", f, q, r)
		}
	}
}

func TestFrontIsIdentity(t *testing.T) {
	if Rotation(Front) != mathutil.Mat3Diag(1, 1, 1) {
		t.Fatalf("Rotation(Front) = %v, want identity", Rotation(Front))
	}
}

func TestOutOfRangePanics(t *testing.T) {
	for _, i := range []Index{-1, Count, 42} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Extent(%d) did not panic", int(i))
				}
			}()
			Extent(i, dims)
		}()
	}
	if Index(7).Valid() {
		t.Error("Index(7).Valid() = true")
	}
	if got := Index(7).String(); got != "face(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Index
		wantErr bool
	}{
		{`"front"`, Front, false},
		{`"bottom"`, Bottom, false},
		{`2`, Top, false},
		{`9`, 9, false},
		{`"lid"`, 0, true},
		{`true`, 0, true},
	}
	for _, tt := range tests {
		var got Index
		err := json.Unmarshal([]byte(tt.in), &got)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.in, got, tt.want)
		}
	}
}
