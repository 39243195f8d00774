package search

import (
	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
)

// Evaluate reports whether prefix ++ candidate hashes to checksum.
// Returns the joined message on a match.
func Evaluate(prefix []byte, checksum string, p crc.Params,
	candidate []byte) ([]byte, bool) {
	message := join(prefix, candidate)
	if crc.Format(crc.Compute(message, p), p) != checksum {
		return nil, false
	}
	return message, true
}

// evaluator is Evaluate with the prefix checksum computed once.
type evaluator struct {
	prefix    []byte
	prefixSum uint32
	checksum  string
	params    crc.Params
}

func newEvaluator(prefix []byte, checksum string, p crc.Params) *evaluator {
	return &evaluator{
		prefix:    prefix,
		prefixSum: crc.Compute(prefix, p),
		checksum:  checksum,
		params:    p,
	}
}

func (e *evaluator) evaluate(candidate []byte) ([]byte, bool) {
	sum := crc.Update(e.prefixSum, e.params, candidate)
	if crc.Format(sum, e.params) != e.checksum {
		return nil, false
	}
	return join(e.prefix, candidate), true
}

func join(prefix []byte, candidate []byte) []byte {
	message := make([]byte, 0, len(prefix)+len(candidate))
	message = append(message, prefix...)
	return append(message, candidate...)
}
