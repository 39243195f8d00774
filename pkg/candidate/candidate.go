package candidate

import (
	"context"
)

// Alphabet is the symbol set tried for a missing suffix, in enumeration
// order.
var Alphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// Count returns alphabetSize^length, saturating at the maximum uint64.
func Count(length int, alphabetSize int) uint64 {
	res := uint64(1)
	for i := 0; i < length; i++ {
		next := res * uint64(alphabetSize)
		if alphabetSize != 0 && next/uint64(alphabetSize) != res {
			return ^uint64(0)
		}
		res = next
	}
	return res
}

// Generate returns every candidate of the given length, depth first in
// alphabet order. A zero length yields a single empty candidate.
func Generate(length int, alphabet []byte) [][]byte {
	if length < 0 {
		panic("candidate: negative length")
	}

	res := make([][]byte, 0, Count(length, len(alphabet)))
	var generate func(depth int, prefix []byte)
	generate = func(depth int, prefix []byte) {
		if depth == 0 {
			res = append(res, prefix)
			return
		}
		for _, c := range alphabet {
			next := make([]byte, len(prefix)+1, length)
			copy(next, prefix)
			next[len(prefix)] = c
			generate(depth-1, next)
		}
	}
	generate(length, make([]byte, 0, length))

	return res
}

// Stream produces the same sequence as Generate lazily. The channel is
// closed once every candidate was sent or ctx is done. Each candidate is
// a fresh slice owned by the receiver.
func Stream(ctx context.Context, length int, alphabet []byte) <-chan []byte {
	if length < 0 {
		panic("candidate: negative length")
	}

	out := make(chan []byte, len(alphabet))
	go func() {
		defer close(out)

		current := make([]byte, length)
		var walk func(depth int) bool
		walk = func(depth int) bool {
			if depth == length {
				c := make([]byte, length)
				copy(c, current)
				select {
				case out <- c:
					return true
				case <-ctx.Done():
					return false
				}
			}
			for _, s := range alphabet {
				current[depth] = s
				if walk(depth+1) == false {
					return false
				}
			}
			return true
		}
		walk(0)
	}()

	return out
}
