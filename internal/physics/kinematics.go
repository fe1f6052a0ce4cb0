package physics

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Positions returns the Cartesian coordinates of the three joints. The
// pivot is the origin, y points up, theta 0 hangs straight down.
func Positions(x dynamo.State, p Params) (x1, y1, x2, y2, x3, y3 float64) {
	th1, th2, th3 := x[0], x[2], x[4]

	x1 = p.L1 * math.Sin(th1)
	y1 = -p.L1 * math.Cos(th1)

	x2 = x1 + p.L2*math.Sin(th2)
	y2 = y1 - p.L2*math.Cos(th2)

	x3 = x2 + p.L3*math.Sin(th3)
	y3 = y2 - p.L3*math.Cos(th3)

	return
}
