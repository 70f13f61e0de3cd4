// Package sequence provides whole-sequence replication and the integer
// arithmetic used to reconcile sequences of unequal length.
package sequence

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a sequence or length is zero.
var ErrEmpty = errors.New("empty sequence")

// Replicate appends the entire original seq to itself until the result is at
// least target elements long. The result length is ceil(target/len)*len and
// may overshoot target.
func Replicate[T any](seq []T, target int) ([]T, error) {
	return ReplicateFunc(seq, target, nil)
}

// ReplicateFunc is Replicate with a clone applied to every element of each
// appended copy. The first copy keeps the original elements.
// A nil clone copies elements by value.
func ReplicateFunc[T any](seq []T, target int, clone func(T) T) ([]T, error) {
	if len(seq) == 0 {
		return nil, fmt.Errorf("replicate to %d: %w", target, ErrEmpty)
	}

	out := make([]T, 0, CeilDiv(max(target, len(seq)), len(seq))*len(seq))
	out = append(out, seq...)
	for len(out) < target {
		if clone == nil {
			out = append(out, seq...)
			continue
		}
		for _, v := range seq {
			out = append(out, clone(v))
		}
	}
	return out, nil
}

// GCD returns the greatest common divisor of a and b. GCD(a, 0) is a.
func GCD(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
// Both must be positive.
func LCM(a, b int) (int, error) {
	if a <= 0 || b <= 0 {
		return 0, fmt.Errorf("lcm(%d, %d): %w", a, b, ErrEmpty)
	}
	return a / GCD(a, b) * b, nil
}

// CeilDiv returns ceil(a/b) for non-negative a and positive b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
