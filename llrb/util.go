package llrb

import "fmt"
import "math"

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

// maxheight is the red-black bound on tree height, 2*log2(n+1).
func maxheight(entries int64) float64 {
	return 2 * math.Log2(float64(entries)+1)
}
