package oracle

import (
	"context"

	"github.com/athanorlabs/go-pasta/internal/weierstrass"
	"github.com/athanorlabs/go-pasta/types"
)

func (o *Oracle) decodeProjective(points ...types.ProjectivePoint) ([]weierstrass.Projective, error) {
	res := make([]weierstrass.Projective, len(points))
	for i, p := range points {
		pp, err := ProjectiveFromWire(o.curve, p)
		if err != nil {
			return nil, err
		}
		res[i] = pp
	}
	return res, nil
}

func (o *Oracle) encodeProjective(p weierstrass.Projective) types.ProjectivePoint {
	return ProjectiveToWire(o.curve, p)
}

// ProjectiveGenerator returns the generator with Z = 1.
func (o *Oracle) ProjectiveGenerator(context.Context) (types.ProjectivePoint, error) {
	return o.encodeProjective(o.curve.ProjectiveGenerator()), nil
}

// IsProjectiveInfinity reports whether p has Z = 0. Coordinates outside the
// base field are rejected as for every other projective operation.
func (o *Oracle) IsProjectiveInfinity(_ context.Context, p types.ProjectivePoint) (bool, error) {
	pts, err := o.decodeProjective(p)
	if err != nil {
		return false, err
	}
	return o.curve.IsIdentity(pts[0]), nil
}

// ProjectiveAdd returns p1 + p2, not normalized.
func (o *Oracle) ProjectiveAdd(_ context.Context, p1, p2 types.ProjectivePoint) (types.ProjectivePoint, error) {
	pts, err := o.decodeProjective(p1, p2)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.curve.AddProjective(pts[0], pts[1])), nil
}

// ProjectiveDouble returns 2p, not normalized.
func (o *Oracle) ProjectiveDouble(_ context.Context, p types.ProjectivePoint) (types.ProjectivePoint, error) {
	pts, err := o.decodeProjective(p)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.curve.DoubleProjective(pts[0])), nil
}

// ProjectiveNegate returns -p.
func (o *Oracle) ProjectiveNegate(_ context.Context, p types.ProjectivePoint) (types.ProjectivePoint, error) {
	pts, err := o.decodeProjective(p)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.curve.NegateProjective(pts[0])), nil
}

// ProjectiveScalarMul returns s*p, not normalized.
func (o *Oracle) ProjectiveScalarMul(ctx context.Context, p types.ProjectivePoint, s types.U256) (types.ProjectivePoint, error) {
	if err := ctx.Err(); err != nil {
		return types.ProjectivePoint{}, err
	}
	pts, err := o.decodeProjective(p)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	k, err := o.scalar(s)
	if err != nil {
		return types.ProjectivePoint{}, err
	}
	return o.encodeProjective(o.curve.ScalarMulProjective(pts[0], k)), nil
}

// ToAffine normalizes p.
func (o *Oracle) ToAffine(_ context.Context, p types.ProjectivePoint) (types.AffinePoint, error) {
	pts, err := o.decodeProjective(p)
	if err != nil {
		return types.AffinePoint{}, err
	}
	return o.encode(o.curve.ToAffine(pts[0])), nil
}
