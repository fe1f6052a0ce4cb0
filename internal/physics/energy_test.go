package physics

import (
	"math"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestEnergyAtRest(t *testing.T) {
	p := DefaultParams()
	p.Gravity = 9.8
	states := []dynamo.State{{0.5, 0, 0, 0, -0.5, 0}}

	ke, pe, total := Energy(states, p)

	if ke[0] != 0 {
		t.Errorf("expected zero kinetic energy, got %f", ke[0])
	}
	expected := 9.8 * 4 * (1 - math.Cos(0.5))
	if math.Abs(pe[0]-expected) > 1e-12 {
		t.Errorf("expected potential %f, got %f", expected, pe[0])
	}
	if total[0] != pe[0] {
		t.Errorf("expected total == potential, got %f vs %f", total[0], pe[0])
	}
}

func TestEnergyFormula(t *testing.T) {
	p := Params{
		M1: 1, M2: 2, M3: 3,
		L1: 0.5, L2: 1, L3: 2,
		Gravity: 10,
		SimTime: 1,
	}
	x := dynamo.State{math.Pi / 2, 2, 0, 1, math.Pi, 0.5}

	ke, pe, total := Energy([]dynamo.State{x}, p)

	// v1^2 = 1, v2^2 = 1, v3^2 = 1
	wantKE := 0.5 * (1*1 + 2*(1+1) + 3*(1+1+1))
	// h1 = 0.5, h2 = 0, h3 = 4
	wantPE := 10 * (1*0.5 + 2*0.5 + 3*(0.5+0+4))

	if math.Abs(ke[0]-wantKE) > 1e-12 {
		t.Errorf("expected kinetic %f, got %f", wantKE, ke[0])
	}
	if math.Abs(pe[0]-wantPE) > 1e-9 {
		t.Errorf("expected potential %f, got %f", wantPE, pe[0])
	}
	if math.Abs(total[0]-(wantKE+wantPE)) > 1e-9 {
		t.Errorf("expected total %f, got %f", wantKE+wantPE, total[0])
	}
}

func TestEnergyLengths(t *testing.T) {
	states := []dynamo.State{
		{0, 0, 0, 0, 0, 0},
		{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		{1, 0, 1, 0, 1, 0},
	}

	ke, pe, total := Energy(states, DefaultParams())

	if len(ke) != 3 || len(pe) != 3 || len(total) != 3 {
		t.Fatalf("expected 3 samples each, got %d/%d/%d", len(ke), len(pe), len(total))
	}
	for i := range total {
		if total[i] != ke[i]+pe[i] {
			t.Errorf("sample %d: total %f != %f + %f", i, total[i], ke[i], pe[i])
		}
	}
}

func TestEnergyPropagatesNaN(t *testing.T) {
	ke, _, total := Energy([]dynamo.State{{0, math.NaN(), 0, 0, 0, 0}}, DefaultParams())

	if !math.IsNaN(ke[0]) || !math.IsNaN(total[0]) {
		t.Errorf("expected NaN to propagate, got ke=%f total=%f", ke[0], total[0])
	}
}

func TestMechanicalEnergyMatchesSingleJointMotion(t *testing.T) {
	p := DefaultParams()
	// With only the first joint moving the whole chain shares one velocity
	// and both kinetic energy definitions agree.
	x := dynamo.State{0.3, 1.7, 0.3, 0, 0.3, 0}

	_, _, total := Energy([]dynamo.State{x}, p)
	mech := MechanicalEnergy(x, p)

	if math.Abs(total[0]-mech) > 1e-12 {
		t.Errorf("expected %f, got %f", total[0], mech)
	}
}

func TestNewFrame(t *testing.T) {
	p := DefaultParams()
	x := dynamo.State{0.2, 0.1, -0.3, 0.4, 0.5, -0.6}

	f := NewFrame(1.25, x, p)
	x1, y1, _, _, x3, y3 := Positions(x, p)
	ke, pe, total := Energy([]dynamo.State{x}, p)

	if f.Time != 1.25 {
		t.Errorf("expected time 1.25, got %f", f.Time)
	}
	if f.X1 != x1 || f.Y1 != y1 || f.X3 != x3 || f.Y3 != y3 {
		t.Errorf("frame positions disagree with Positions")
	}
	if f.Kinetic != ke[0] || f.Potential != pe[0] || f.Total != total[0] {
		t.Errorf("frame energy disagrees with Energy")
	}
}
