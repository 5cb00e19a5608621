package pasta

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/athanorlabs/go-pasta/types"
)

// run is the state of one case: both oracles, the case's own random stream
// and the number of comparisons made so far.
type run struct {
	ctx       context.Context
	curve     Curve
	subject   types.Oracle
	reference types.Oracle
	rng       *RNG
	rounds    int
	checks    int

	generator *types.AffinePoint
}

func (c *Checker) newRun(ctx context.Context, rng *RNG) *run {
	return &run{
		ctx:       ctx,
		curve:     c.curve,
		subject:   c.subject,
		reference: c.reference,
		rng:       rng,
		rounds:    c.rounds,
	}
}

// kindOf returns the ErrorKind carried by err, or "" if there is none.
func kindOf(err error) types.ErrorKind {
	var kind types.ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return ""
}

func mismatch(op, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrMismatch, op, fmt.Sprintf(format, args...))
}

// sameOutcome checks that both calls failed the same way or both succeeded.
// Failures without an ErrorKind are not rejections; they end the case.
func sameOutcome(op string, gotErr, wantErr error) error {
	if gotErr == nil && wantErr == nil {
		return nil
	}
	if wantErr != nil && kindOf(wantErr) == "" {
		return fmt.Errorf("reference %s: %w", op, wantErr)
	}
	if gotErr != nil && kindOf(gotErr) == "" {
		return fmt.Errorf("subject %s: %w", op, gotErr)
	}
	switch {
	case wantErr == nil:
		return mismatch(op, "subject rejected: %v", gotErr)
	case gotErr == nil:
		return mismatch(op, "subject accepted, reference rejected: %v", wantErr)
	case kindOf(gotErr) != kindOf(wantErr):
		return mismatch(op, "subject rejected with %v, reference with %v",
			kindOf(gotErr), kindOf(wantErr))
	}
	return nil
}

// both calls op on the two oracles and compares the results. It returns the
// reference result so cases can build on it.
func both[T comparable](r *run, op string, call func(types.Oracle) (T, error)) (T, error) {
	r.checks++
	got, gotErr := call(r.subject)
	want, wantErr := call(r.reference)
	if err := sameOutcome(op, gotErr, wantErr); err != nil {
		return want, err
	}
	if gotErr == nil && got != want {
		return want, mismatch(op, "subject returned %v, reference %v", got, want)
	}
	return want, nil
}

// expectKind calls op on both oracles and requires each to reject with kind.
func expectKind(r *run, op string, kind types.ErrorKind, call func(types.Oracle) error) error {
	r.checks++
	for _, o := range []types.Oracle{r.subject, r.reference} {
		err := call(o)
		if got := kindOf(err); got != kind {
			if err == nil {
				return mismatch(op, "%s accepted, want %v", o.Name(), kind)
			}
			return mismatch(op, "%s rejected with %v, want %v", o.Name(), err, kind)
		}
	}
	return nil
}

func (r *run) generatorPoint() (types.AffinePoint, error) {
	if r.generator == nil {
		g, err := r.reference.Generator(r.ctx)
		if err != nil {
			return types.AffinePoint{}, fmt.Errorf("reference generator: %w", err)
		}
		r.generator = &g
	}
	return *r.generator, nil
}

// randomScalar draws a scalar by reducing 64 random bytes with the
// reference.
func (r *run) randomScalar() (types.U256, error) {
	s, err := r.reference.FromLeBytesModOrder(r.ctx, r.rng.Bytes(64))
	if err != nil {
		return types.U256{}, fmt.Errorf("reference from_le_bytes_mod_order: %w", err)
	}
	return s, nil
}

// randomPoint returns a random multiple of the generator computed by the
// reference.
func (r *run) randomPoint() (types.AffinePoint, error) {
	g, err := r.generatorPoint()
	if err != nil {
		return types.AffinePoint{}, err
	}
	s, err := r.randomScalar()
	if err != nil {
		return types.AffinePoint{}, err
	}
	p, err := r.reference.ScalarMul(r.ctx, g, s)
	if err != nil {
		return types.AffinePoint{}, fmt.Errorf("reference scalar_mul: %w", err)
	}
	return p, nil
}

// offset returns u + d, which must stay within 256 bits.
func offset(u types.U256, d int64) types.U256 {
	v := u.Int()
	var overflow bool
	if d < 0 {
		_, overflow = v.SubOverflow(v, uint256.NewInt(uint64(-d)))
	} else {
		_, overflow = v.AddOverflow(v, uint256.NewInt(uint64(d)))
	}
	if overflow {
		panic("offset leaves the 256-bit range")
	}
	return types.U256FromInt(v)
}
