// SPDX-License-Identifier: EPL-2.0

package tone

import "math"

// sine holds one full period of round(127*sin(2πi/256)).
var sine = func() (t [256]int8) {
	for i := range t {
		t[i] = int8(math.Round(127 * math.Sin(2*math.Pi*float64(i)/256)))
	}
	return t
}()
