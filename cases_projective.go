package pasta

import (
	"fmt"

	"github.com/athanorlabs/go-pasta/types"
)

// projective returns both oracles with their projective API. The case list
// only includes projective cases when the assertions hold.
func (r *run) projective() (subject, reference types.ProjectiveOracle) {
	return r.subject.(types.ProjectiveOracle), r.reference.(types.ProjectiveOracle)
}

// bothProjective calls op on both oracles and compares the results after
// normalizing each with the reference, since equal points may have different
// projective coordinates.
func bothProjective(r *run, op string, call func(types.ProjectiveOracle) (types.ProjectivePoint, error)) (types.ProjectivePoint, error) {
	subject, reference := r.projective()

	r.checks++
	got, gotErr := call(subject)
	want, wantErr := call(reference)
	if err := sameOutcome(op, gotErr, wantErr); err != nil || wantErr != nil {
		return want, err
	}

	gotAffine, err := reference.ToAffine(r.ctx, got)
	if err != nil {
		return want, mismatch(op, "subject returned %v, which does not normalize: %v", got, err)
	}
	wantAffine, err := reference.ToAffine(r.ctx, want)
	if err != nil {
		return want, fmt.Errorf("reference to_affine: %w", err)
	}
	if gotAffine != wantAffine {
		return want, mismatch(op, "subject returned %v (%v), reference %v (%v)",
			got, gotAffine, want, wantAffine)
	}
	return want, nil
}

// randomProjective returns a random multiple of the projective generator as
// computed by the reference, usually with Z != 1.
func (r *run) randomProjective() (types.ProjectivePoint, error) {
	_, reference := r.projective()
	g, err := reference.ProjectiveGenerator(r.ctx)
	if err != nil {
		return types.ProjectivePoint{}, fmt.Errorf("reference projective_generator: %w", err)
	}
	s, err := r.randomScalar()
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	p, err := reference.ProjectiveScalarMul(r.ctx, g, s)
	if err != nil {
		return types.ProjectivePoint{}, fmt.Errorf("reference projective_scalar_mul: %w", err)
	}
	return p, nil
}

func checkProjectiveGenerator(r *run) error {
	g, err := bothProjective(r, "projective_generator", func(o types.ProjectiveOracle) (types.ProjectivePoint, error) {
		return o.ProjectiveGenerator(r.ctx)
	})
	if err != nil {
		return err
	}

	// the projective generator normalizes to the affine one
	_, reference := r.projective()
	affine, err := reference.ToAffine(r.ctx, g)
	if err != nil {
		return err
	}
	expected, err := r.generatorPoint()
	if err != nil {
		return err
	}
	r.checks++
	if affine != expected {
		return mismatch("projective_generator", "normalizes to %v, want %v", affine, expected)
	}
	return nil
}

func checkProjectiveIsInfinity(r *run) error {
	isInf := func(p types.ProjectivePoint, expected bool) error {
		got, err := both(r, "is_projective_infinity", func(o types.Oracle) (bool, error) {
			return o.(types.ProjectiveOracle).IsProjectiveInfinity(r.ctx, p)
		})
		if err != nil {
			return err
		}
		if got != expected {
			return mismatch("is_projective_infinity", "%v reported %v", p, got)
		}
		return nil
	}

	if err := isInf(types.ProjectivePoint{}, true); err != nil {
		return err
	}
	one := types.U256FromUint64(1)
	if err := isInf(types.ProjectivePoint{X: one, Y: one}, true); err != nil {
		return err
	}
	// Z = p is zero in the field but out of range on the wire
	outOfRange := types.ProjectivePoint{X: one, Y: one, Z: r.curve.BaseModulus}
	err := expectKind(r, "is_projective_infinity", types.ErrInvalidPoint, func(o types.Oracle) error {
		_, err := o.(types.ProjectiveOracle).IsProjectiveInfinity(r.ctx, outOfRange)
		return err
	})
	if err != nil {
		return err
	}
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomProjective()
		if err != nil {
			return err
		}
		if err := isInf(p, false); err != nil {
			return err
		}
	}
	return nil
}

func checkProjectiveAdd(r *run) error {
	add := func(p1, p2 types.ProjectivePoint) error {
		_, err := bothProjective(r, "projective_add", func(o types.ProjectiveOracle) (types.ProjectivePoint, error) {
			return o.ProjectiveAdd(r.ctx, p1, p2)
		})
		return err
	}

	for i := 0; i < r.rounds; i++ {
		p1, err := r.randomProjective()
		if err != nil {
			return err
		}
		p2, err := r.randomProjective()
		if err != nil {
			return err
		}
		if err := add(p1, p2); err != nil {
			return err
		}
		if err := add(p1, p1); err != nil {
			return err
		}
		if err := add(p1, types.ProjectivePoint{}); err != nil {
			return err
		}
	}
	return nil
}

func checkProjectiveDouble(r *run) error {
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomProjective()
		if err != nil {
			return err
		}
		_, err = bothProjective(r, "projective_double", func(o types.ProjectiveOracle) (types.ProjectivePoint, error) {
			return o.ProjectiveDouble(r.ctx, p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkProjectiveNegate(r *run) error {
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomProjective()
		if err != nil {
			return err
		}
		_, err = bothProjective(r, "projective_negate", func(o types.ProjectiveOracle) (types.ProjectivePoint, error) {
			return o.ProjectiveNegate(r.ctx, p)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkProjectiveScalarMul(r *run) error {
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomProjective()
		if err != nil {
			return err
		}
		s, err := r.randomScalar()
		if err != nil {
			return err
		}
		_, err = bothProjective(r, "projective_scalar_mul", func(o types.ProjectiveOracle) (types.ProjectivePoint, error) {
			return o.ProjectiveScalarMul(r.ctx, p, s)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkToAffine(r *run) error {
	toAffine := func(p types.ProjectivePoint) error {
		_, err := both(r, "to_affine", func(o types.Oracle) (types.AffinePoint, error) {
			return o.(types.ProjectiveOracle).ToAffine(r.ctx, p)
		})
		return err
	}

	if err := toAffine(types.ProjectivePoint{}); err != nil {
		return err
	}
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomProjective()
		if err != nil {
			return err
		}
		if err := toAffine(p); err != nil {
			return err
		}
	}
	return nil
}
