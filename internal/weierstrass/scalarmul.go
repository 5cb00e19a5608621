package weierstrass

import (
	"context"
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/athanorlabs/go-pasta/internal/field"
)

const scalarWindow = 4

// window returns width bits of the little-endian limbs l starting at bit
// shift.
func window(l *[4]uint64, shift, width uint) uint64 {
	idx, off := shift/64, shift%64
	v := l[idx] >> off
	if off+width > 64 && idx+1 < 4 {
		v |= l[idx+1] << (64 - off)
	}
	return v & (1<<width - 1)
}

// ScalarMul returns k*p.
func (c *Curve) ScalarMul(p Affine, k field.Element) Affine {
	return c.ToAffine(c.ScalarMulProjective(c.FromAffine(p), k))
}

// ScalarMulProjective returns k*p using a fixed 4-bit window.
func (c *Curve) ScalarMulProjective(p Projective, k field.Element) Projective {
	var table [1 << scalarWindow]Projective
	table[0] = c.Identity()
	table[1] = p
	for i := 2; i < len(table); i++ {
		table[i] = c.AddProjective(table[i-1], p)
	}

	limbs := c.scalar.Canonical(k)
	nbits := c.scalar.Bits()
	top := (nbits + scalarWindow - 1) / scalarWindow

	acc := c.Identity()
	for w := top - 1; w >= 0; w-- {
		for i := 0; i < scalarWindow; i++ {
			acc = c.DoubleProjective(acc)
		}
		d := window(&limbs, uint(w*scalarWindow), scalarWindow)
		if d != 0 {
			acc = c.AddProjective(acc, table[d])
		}
	}
	return acc
}

// msmWindow picks the Pippenger bucket width for n terms, roughly ln(n) + 2.
func msmWindow(n int) uint {
	if n < 32 {
		return 3
	}
	return uint((bits.Len(uint(n))-1)*69/100 + 2)
}

// MultiScalarMul returns sum(scalars[i] * points[i]) using the Pippenger
// bucket method. An empty input sums to infinity.
func (c *Curve) MultiScalarMul(points []Affine, scalars []field.Element) (Affine, error) {
	if len(points) != len(scalars) {
		return Affine{}, ErrLengthMismatch
	}
	if len(points) == 0 {
		return Infinity(), nil
	}

	width := msmWindow(len(points))
	nbits := uint(c.scalar.Bits())
	numWindows := (nbits + width - 1) / width

	limbs := make([][4]uint64, len(scalars))
	for i, s := range scalars {
		limbs[i] = c.scalar.Canonical(s)
	}
	lifted := make([]Projective, len(points))
	for i, p := range points {
		lifted[i] = c.FromAffine(p)
	}

	buckets := make([]Projective, 1<<width-1)
	acc := c.Identity()
	for w := int(numWindows) - 1; w >= 0; w-- {
		for i := uint(0); i < width; i++ {
			acc = c.DoubleProjective(acc)
		}

		for i := range buckets {
			buckets[i] = c.Identity()
		}
		for i := range lifted {
			d := window(&limbs[i], uint(w)*width, width)
			if d != 0 {
				buckets[d-1] = c.AddProjective(buckets[d-1], lifted[i])
			}
		}

		// sum_j (j+1) * buckets[j]
		running, sum := c.Identity(), c.Identity()
		for j := len(buckets) - 1; j >= 0; j-- {
			running = c.AddProjective(running, buckets[j])
			sum = c.AddProjective(sum, running)
		}
		acc = c.AddProjective(acc, sum)
	}
	return c.ToAffine(acc), nil
}

// MSMInput is one independent multi-scalar multiplication.
type MSMInput struct {
	Points  []Affine
	Scalars []field.Element
}

// BatchMultiScalarMul evaluates independent multi-scalar multiplications
// concurrently. Results are returned in input order. The first failure, or
// cancellation of ctx, aborts the batch.
func (c *Curve) BatchMultiScalarMul(ctx context.Context, batches []MSMInput) ([]Affine, error) {
	results := make([]Affine, len(batches))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range batches {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.MultiScalarMul(batches[i].Points, batches[i].Scalars)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
