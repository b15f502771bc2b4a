package traits

import "hash/fnv"

// stream es un PRNG splitmix64 sembrado con el hash FNV-1a del identificador.
// Mismo id => misma secuencia, en cualquier proceso.
type stream struct {
	state uint64
}

func newStream(id string) *stream {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return &stream{state: h.Sum64()}
}

func (s *stream) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// float devuelve un valor uniforme en [0, 1).
func (s *stream) float() float64 {
	return float64(s.next()>>11) / (1 << 53)
}

// intRange devuelve un entero uniforme en [lo, hi] (ambos inclusive).
func (s *stream) intRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(s.float()*float64(hi-lo+1))
}

// pick elige un elemento uniforme de opts.
func pick[T any](s *stream, opts []T) T {
	return opts[s.intRange(0, len(opts)-1)]
}

// weighted elige según pesos (no necesitan sumar 1).
func weighted[T any](s *stream, opts []T, weights []float64) T {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := s.float() * total
	for i, w := range weights {
		if r < w {
			return opts[i]
		}
		r -= w
	}
	return opts[len(opts)-1]
}
