package corexs

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Fatalf("Add: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Fatalf("Sub: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Fatalf("Dot: got %v want 32", got)
	}
}

func TestVec3Norm(t *testing.T) {
	v := Vec3{3, 4, 0}.Norm()
	if math.Abs(v.Len()-1) > 1e-12 {
		t.Fatalf("Norm: length %v want 1", v.Len())
	}
	zero := Vec3{0, 0, 0}.Norm()
	if zero != (Vec3{0, 0, 0}) {
		t.Fatalf("Norm of zero vector should stay zero, got %v", zero)
	}
}

func TestEulerXYZRotatesZAxisBy90(t *testing.T) {
	r := EulerXYZ(0, 0, math.Pi/2)
	got := r.MulVec(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Fatalf("rotated (1,0,0) by 90deg about z: got %v want %v", got, want)
	}
}

func TestMat3TransposeIsInverseForRotation(t *testing.T) {
	r := EulerXYZ(0.3, -0.4, 0.7)
	rt := r.Transpose()
	v := Vec3{1, 2, 3}
	back := rt.MulVec(r.MulVec(v))
	if math.Abs(back.X-v.X) > 1e-9 || math.Abs(back.Y-v.Y) > 1e-9 || math.Abs(back.Z-v.Z) > 1e-9 {
		t.Fatalf("R^T * R * v != v: got %v want %v", back, v)
	}
}
