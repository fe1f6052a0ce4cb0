package integrators

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince 5(4) embedded pair with FSAL. The fifth order
// solution is propagated, the fourth order one only drives step control.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Order is the order of the embedded error estimator.
func (r *RK45) Order() int { return 4 }

// Step takes one unchecked fifth order step.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	k1, err := dyn.Derive(x, t)
	if err != nil {
		return nil, err
	}
	res, err := r.Attempt(dyn, x, k1, t, dt, 1, 1)
	if err != nil {
		return nil, err
	}
	return res.X, nil
}

// StepAdaptive attempts one step and proposes the size of the next one.
// The caller accepts the step when res.Err <= 1 and otherwise retries from x
// with the returned dt.
func (r *RK45) StepAdaptive(dyn dynamo.System, x, dx dynamo.State, t, dt, atol, rtol float64) (dynamo.StepResult, float64, error) {
	res, err := r.Attempt(dyn, x, dx, t, dt, atol, rtol)
	if err != nil {
		return dynamo.StepResult{}, dt, err
	}
	return res, dt * r.scale(res.Err), nil
}

func (r *RK45) scale(errNorm float64) float64 {
	exp := -1.0 / float64(r.Order()+1)
	if errNorm > 1 {
		return math.Max(r.minScale, r.safety*math.Pow(errNorm, exp))
	}
	if errNorm == 0 {
		return r.maxScale
	}
	return math.Min(r.maxScale, r.safety*math.Pow(errNorm, exp))
}

// Attempt evaluates the six remaining stages from k1 = dx and the derivative
// at the new point, which becomes k1 of the next step.
func (r *RK45) Attempt(dyn dynamo.System, x, dx dynamo.State, t, dt, atol, rtol float64) (dynamo.StepResult, error) {
	n := len(x)
	k1 := dx
	tmp := make(dynamo.State, n)

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*b21*k1[i]
	}
	k2, err := dyn.Derive(tmp, t+a2*dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3, err := dyn.Derive(tmp, t+a3*dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4, err := dyn.Derive(tmp, t+a4*dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5, err := dyn.Derive(tmp, t+a5*dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	for i := 0; i < n; i++ {
		tmp[i] = x[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6, err := dyn.Derive(tmp, t+dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	xNew := make(dynamo.State, n)
	for i := 0; i < n; i++ {
		xNew[i] = x[i] + dt*(c1*k1[i]+c3*k3[i]+c4*k4[i]+c5*k5[i]+c6*k6[i])
	}

	k7, err := dyn.Derive(xNew, t+dt)
	if err != nil {
		return dynamo.StepResult{}, err
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		errEst := dt * (dc1*k1[i] + dc3*k3[i] + dc4*k4[i] + dc5*k5[i] + dc6*k6[i] + dc7*k7[i])
		scale := atol + math.Max(math.Abs(x[i]), math.Abs(xNew[i]))*rtol
		e := errEst / scale
		sum += e * e
	}

	errNorm := 0.0
	if n > 0 {
		errNorm = math.Sqrt(sum / float64(n))
	}

	return dynamo.StepResult{X: xNew, Deriv: k7, Err: errNorm}, nil
}
