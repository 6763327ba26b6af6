package corexs

import (
	"math"
	"testing"
)

func TestXPlaneDistanceAndSelfHit(t *testing.T) {
	p := &XPlane{Surf: 1, X0: 5}
	r := Vec3{0, 0, 0}
	u := Vec3{1, 0, 0}
	d := p.Distance(r, u, 0)
	if math.Abs(d-5) > 1e-12 {
		t.Fatalf("distance to x=5 from origin along +x: got %v want 5", d)
	}
	if !math.IsInf(p.Distance(r, u, 1), 1) {
		t.Fatalf("prior_surface=1 (same sign) must return +Inf")
	}
	if math.IsInf(p.Distance(r, u, -1), 1) {
		t.Fatalf("prior_surface=-1 (opposite sign) is a different crossing, must not be suppressed")
	}
}

func TestSphereExitDistanceAfterEntrySelfHit(t *testing.T) {
	s := &Sphere{Surf: 2, Center: Vec3{0, 0, 0}, R: 1}
	r := Vec3{-5, 0, 0}
	u := Vec3{1, 0, 0}

	entryPrior := 0
	dEntry := s.Distance(r, u, entryPrior)
	if math.Abs(dEntry-4) > 1e-9 {
		t.Fatalf("entry distance: got %v want 4", dEntry)
	}
	hit := r.Add(u.Mul(dEntry))
	if s.Normal(hit).Dot(u) >= 0 {
		t.Fatalf("expected entry root's normal to oppose travel direction")
	}
	entrySigned := -s.Surf // entering: u.n < 0

	inside := r.Add(u.Mul(dEntry + 0.5))
	dExit := s.Distance(inside, u, entrySigned)
	if math.IsInf(dExit, 1) {
		t.Fatalf("a cell's own exit root must not be suppressed by the entry's prior_surface")
	}
	wantExit := (s.Center.X + s.R) - inside.X
	if math.Abs(dExit-wantExit) > 1e-9 {
		t.Fatalf("exit distance: got %v want %v", dExit, wantExit)
	}
}

func TestSphereDistanceTwoRoots(t *testing.T) {
	s := &Sphere{Surf: 2, Center: Vec3{0, 0, 0}, R: 1}
	r := Vec3{-5, 0, 0}
	u := Vec3{1, 0, 0}
	d := s.Distance(r, u, 0)
	if math.Abs(d-4) > 1e-9 {
		t.Fatalf("distance to unit sphere from (-5,0,0): got %v want 4", d)
	}
}

func TestSphereEvaluateSign(t *testing.T) {
	s := &Sphere{Surf: 2, Center: Vec3{0, 0, 0}, R: 1}
	if s.Evaluate(Vec3{0, 0, 0}) >= 0 {
		t.Fatalf("center should be inside (negative evaluate)")
	}
	if s.Evaluate(Vec3{2, 0, 0}) <= 0 {
		t.Fatalf("point outside sphere should evaluate positive")
	}
}

func TestZCylinderDistance(t *testing.T) {
	c := &ZCylinder{axisCylinder{Surf: 3, C0: 0, C1: 0, R: 2}}
	d := c.Distance(Vec3{-10, 0, 0}, Vec3{1, 0, 0}, 0)
	if math.Abs(d-8) > 1e-9 {
		t.Fatalf("distance to radius-2 z-cylinder from (-10,0,0): got %v want 8", d)
	}
}

func TestConeNormalPointsAway(t *testing.T) {
	k := &Cone{Surf: 4, Apex: Vec3{0, 0, 0}, Slope: 1}
	n := k.Normal(Vec3{1, 0, 1})
	if n.Z >= 0 {
		t.Fatalf("cone normal at (1,0,1) should have negative z component, got %v", n)
	}
}
