package application

import (
	"errors"
	"fmt"
	"iter"

	"zinnia/internal/domain"
)

// Ramp is a brightness sweep from Start to End inclusive.
type Ramp struct {
	Start int
	End   int
	Step  int
}

func DefaultRamp() Ramp {
	return Ramp{Start: 10, End: 100, Step: 10}
}

func (r Ramp) Validate() error {
	if r.Step <= 0 {
		return fmt.Errorf("ramp step must be positive, got %d", r.Step)
	}
	if r.Start > r.End {
		return fmt.Errorf("ramp start %d is past end %d", r.Start, r.End)
	}
	return errors.Join(domain.ValidatePercent(r.Start), domain.ValidatePercent(r.End))
}

// Len is the number of steps the ramp yields.
func (r Ramp) Len() int {
	if r.Step <= 0 || r.Start > r.End {
		return 0
	}
	return (r.End-r.Start)/r.Step + 1
}

// Percents yields one brightness per step, leaving the pace to the caller.
func (r Ramp) Percents() iter.Seq[int] {
	return func(yield func(int) bool) {
		if r.Step <= 0 {
			return
		}
		for p := r.Start; p <= r.End; p += r.Step {
			if !yield(p) {
				return
			}
		}
	}
}
