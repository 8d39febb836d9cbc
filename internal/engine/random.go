package engine

import "math/rand"

// randSource is a lightweight wrapper around math/rand.Rand. It is not
// safe for concurrent use; the renderer derives one per pixel from the
// render seed so output never depends on worker scheduling.
type randSource struct {
	r *rand.Rand
}

func newRandSource(seed int64) *randSource {
	return &randSource{r: rand.New(rand.NewSource(seed))}
}

func (rs *randSource) Float64() float64 {
	return rs.r.Float64()
}

// pixelSeed mixes the render seed with pixel coordinates (splitmix64
// finalizer) so neighboring pixels draw uncorrelated samples.
func pixelSeed(seed int64, x, y int) int64 {
	h := uint64(seed)*0x9e3779b97f4a7c15 + uint64(x)*0xbf58476d1ce4e5b9 + uint64(y)
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}
