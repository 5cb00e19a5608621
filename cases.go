package pasta

import (
	"github.com/athanorlabs/go-pasta/types"
)

func checkGenerator(r *run) error {
	_, err := both(r, "generator", func(o types.Oracle) (types.AffinePoint, error) {
		return o.Generator(r.ctx)
	})
	return err
}

func checkAdd(r *run) error {
	add := func(p1, p2 types.AffinePoint) error {
		_, err := both(r, "add", func(o types.Oracle) (types.AffinePoint, error) {
			return o.Add(r.ctx, p1, p2)
		})
		return err
	}

	for i := 0; i < r.rounds; i++ {
		p1, err := r.randomPoint()
		if err != nil {
			return err
		}
		p2, err := r.randomPoint()
		if err != nil {
			return err
		}
		if err := add(p1, p2); err != nil {
			return err
		}
	}

	p, err := r.randomPoint()
	if err != nil {
		return err
	}
	for _, pair := range [][2]types.AffinePoint{
		{p, p},
		{p, {}},
		{{}, p},
		{{}, {}},
	} {
		if err := add(pair[0], pair[1]); err != nil {
			return err
		}
	}

	// P + O must be P itself, not merely agree with the reference.
	sum, err := r.subject.Add(r.ctx, p, types.AffinePoint{})
	if err != nil {
		return mismatch("add", "identity: %v", err)
	}
	if sum != p {
		return mismatch("add", "P + O = %v, want %v", sum, p)
	}
	return nil
}

func checkIsInfinity(r *run) error {
	isInf := func(p types.AffinePoint, expected bool) error {
		got, err := both(r, "is_infinity", func(o types.Oracle) (bool, error) {
			return o.IsInfinity(r.ctx, p)
		})
		if err != nil {
			return err
		}
		if got != expected {
			return mismatch("is_infinity", "%v reported %v", p, got)
		}
		return nil
	}

	if err := isInf(types.AffinePoint{}, true); err != nil {
		return err
	}
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		if err := isInf(p, false); err != nil {
			return err
		}
	}
	return nil
}

func checkNegate(r *run) error {
	negate := func(p types.AffinePoint) (types.AffinePoint, error) {
		return both(r, "negate", func(o types.Oracle) (types.AffinePoint, error) {
			return o.Negate(r.ctx, p)
		})
	}

	if _, err := negate(types.AffinePoint{}); err != nil {
		return err
	}
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		minusP, err := negate(p)
		if err != nil {
			return err
		}

		// P + (-P) = O
		sum, err := both(r, "add", func(o types.Oracle) (types.AffinePoint, error) {
			return o.Add(r.ctx, p, minusP)
		})
		if err != nil {
			return err
		}
		if !sum.IsZero() {
			return mismatch("negate", "P + (-P) = %v", sum)
		}
	}
	return nil
}

func checkDouble(r *run) error {
	double := func(p types.AffinePoint) (types.AffinePoint, error) {
		return both(r, "double", func(o types.Oracle) (types.AffinePoint, error) {
			return o.Double(r.ctx, p)
		})
	}

	if _, err := double(types.AffinePoint{}); err != nil {
		return err
	}
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		d, err := double(p)
		if err != nil {
			return err
		}
		sum, err := r.subject.Add(r.ctx, p, p)
		if err != nil {
			return mismatch("double", "P + P: %v", err)
		}
		if sum != d {
			return mismatch("double", "2P = %v but P + P = %v", d, sum)
		}
	}
	return nil
}

func checkScalarMul(r *run) error {
	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		s, err := r.randomScalar()
		if err != nil {
			return err
		}
		_, err = both(r, "scalar_mul", func(o types.Oracle) (types.AffinePoint, error) {
			return o.ScalarMul(r.ctx, p, s)
		})
		if err != nil {
			return err
		}
	}

	p, err := r.randomPoint()
	if err != nil {
		return err
	}
	for _, s := range []types.U256{{}, types.U256FromUint64(1), offset(r.curve.ScalarModulus, -1)} {
		s := s
		_, err = both(r, "scalar_mul", func(o types.Oracle) (types.AffinePoint, error) {
			return o.ScalarMul(r.ctx, p, s)
		})
		if err != nil {
			return err
		}
	}
	return expectKind(r, "scalar_mul", types.ErrInvalidScalar, func(o types.Oracle) error {
		_, err := o.ScalarMul(r.ctx, p, r.curve.ScalarModulus)
		return err
	})
}

func checkMultiScalarMul(r *run) error {
	for length := 1; length <= MaxMSMLength; length++ {
		points := make([]types.AffinePoint, length)
		scalars := make([]types.U256, length)
		for i := range points {
			var err error
			if points[i], err = r.randomPoint(); err != nil {
				return err
			}
			if scalars[i], err = r.randomScalar(); err != nil {
				return err
			}
		}

		_, err := both(r, "multi_scalar_mul", func(o types.Oracle) (types.AffinePoint, error) {
			return o.MultiScalarMul(r.ctx, points, scalars)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkIsYNegative(r *run) error {
	isNeg := func(p types.AffinePoint) (bool, error) {
		return both(r, "is_y_negative", func(o types.Oracle) (bool, error) {
			return o.IsYNegative(r.ctx, p)
		})
	}

	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		minusP, err := r.reference.Negate(r.ctx, p)
		if err != nil {
			return err
		}

		a, err := isNeg(p)
		if err != nil {
			return err
		}
		b, err := isNeg(minusP)
		if err != nil {
			return err
		}
		if a == b {
			return mismatch("is_y_negative", "P and -P both reported %v", a)
		}
	}
	return nil
}

func checkInvert(r *run) error {
	for i := 0; i < r.rounds; i++ {
		s, err := r.randomScalar()
		if err != nil {
			return err
		}
		if s.IsZero() {
			continue
		}
		_, err = both(r, "invert_fr", func(o types.Oracle) (types.U256, error) {
			return o.InvertFr(r.ctx, s)
		})
		if err != nil {
			return err
		}

		// x coordinates of random points are random base field elements
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		_, err = both(r, "invert_fq", func(o types.Oracle) (types.U256, error) {
			return o.InvertFq(r.ctx, p.X)
		})
		if err != nil {
			return err
		}
	}

	err := expectKind(r, "invert_fr", types.ErrDivisionByZero, func(o types.Oracle) error {
		_, err := o.InvertFr(r.ctx, types.U256{})
		return err
	})
	if err != nil {
		return err
	}
	return expectKind(r, "invert_fq", types.ErrDivisionByZero, func(o types.Oracle) error {
		_, err := o.InvertFq(r.ctx, types.U256{})
		return err
	})
}

func checkValidateCurvePoint(r *run) error {
	validate := func(p types.AffinePoint) func(types.Oracle) error {
		return func(o types.Oracle) error {
			return o.ValidateCurvePoint(r.ctx, p)
		}
	}

	for i := 0; i < r.rounds; i++ {
		p, err := r.randomPoint()
		if err != nil {
			return err
		}
		_, err = both(r, "validate_curve_point", func(o types.Oracle) (struct{}, error) {
			return struct{}{}, o.ValidateCurvePoint(r.ctx, p)
		})
		if err != nil {
			return err
		}
	}

	p, err := r.randomPoint()
	if err != nil {
		return err
	}
	for _, bad := range []types.AffinePoint{
		{X: types.U256{}, Y: p.Y},
		{X: p.X, Y: types.U256{}},
		{X: types.MaxU256(), Y: p.Y},
		{X: p.X, Y: types.MaxU256()},
		{X: r.curve.BaseModulus, Y: p.Y},
		{X: types.U256FromUint64(1), Y: types.U256FromUint64(3)},
		{},
	} {
		if err := expectKind(r, "validate_curve_point", types.ErrInvalidPoint, validate(bad)); err != nil {
			return err
		}
	}
	return nil
}

func checkValidateScalarField(r *run) error {
	validate := func(s types.U256) func(types.Oracle) (struct{}, error) {
		return func(o types.Oracle) (struct{}, error) {
			return struct{}{}, o.ValidateScalarField(r.ctx, s)
		}
	}

	for i := 0; i < r.rounds; i++ {
		s, err := r.randomScalar()
		if err != nil {
			return err
		}
		if _, err := both(r, "validate_scalar_field", validate(s)); err != nil {
			return err
		}
	}

	order := r.curve.ScalarModulus
	for _, s := range []types.U256{{}, offset(order, -1)} {
		r.checks++
		if err := r.subject.ValidateScalarField(r.ctx, s); err != nil {
			return mismatch("validate_scalar_field", "%v rejected: %v", s, err)
		}
	}
	for _, s := range []types.U256{order, offset(order, 1), types.MaxU256()} {
		s := s
		err := expectKind(r, "validate_scalar_field", types.ErrInvalidScalar, func(o types.Oracle) error {
			return o.ValidateScalarField(r.ctx, s)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func checkFromLeBytesModOrder(r *run) error {
	for i := 0; i < r.rounds; i++ {
		for _, n := range []int{32, 48} {
			b := r.rng.Bytes(n)
			_, err := both(r, "from_le_bytes_mod_order", func(o types.Oracle) (types.U256, error) {
				return o.FromLeBytesModOrder(r.ctx, b)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func checkPowSmall(r *run) error {
	for i := 0; i < r.rounds; i++ {
		base, err := r.randomScalar()
		if err != nil {
			return err
		}
		exponent := types.U256FromUint64(r.rng.Uint64())
		_, err = both(r, "pow_small", func(o types.Oracle) (types.U256, error) {
			return o.PowSmall(r.ctx, base, exponent, r.curve.ScalarModulus)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
