// Package rewards converts quiz performance into prize points.
package rewards

import "math"

// PointsForSubmission computes the prize points a graded submission earns.
// Failed submissions earn nothing. Passing submissions earn the integer points
// they actually scored. The grader reports the score as a percentage, so the
// earned value is reconstructed by rounding maxPoints*score/100 back to the
// nearest integer; truncating instead would drop a point whenever the
// percentage round trip lands a hair under the true value.
func PointsForSubmission(score float64, passed bool, maxPoints int) int {
	if !passed || maxPoints <= 0 {
		return 0
	}
	return int(math.Round(float64(maxPoints) * score / 100.0))
}
