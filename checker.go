// Package pasta cross-validates implementations of the Pasta curve
// operations. A Checker drives a subject oracle and a reference oracle
// through the same randomized operation matrix and reports every
// disagreement.
package pasta

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/athanorlabs/go-pasta/types"
)

// ErrMismatch is wrapped by every failure where the subject disagrees with
// the reference or with an expected outcome.
var ErrMismatch = errors.New("oracles disagree")

const (
	// DefaultRounds is the number of random iterations per case.
	DefaultRounds = 10

	// MaxMSMLength is the longest multi-scalar multiplication checked.
	MaxMSMLength = 9

	seedSize = 32
)

// Option configures a Checker.
type Option func(*Checker)

// WithRounds sets the number of random iterations per case.
func WithRounds(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.rounds = n
		}
	}
}

// WithSeed fixes the seed all random inputs are derived from. Without it a
// random seed is drawn, which is recorded in the Report.
func WithSeed(seed []byte) Option {
	return func(c *Checker) {
		c.seed = append([]byte(nil), seed...)
	}
}

// WithParallelism sets how many cases run concurrently.
func WithParallelism(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.parallelism = n
		}
	}
}

// Checker compares a subject oracle against a reference oracle.
type Checker struct {
	curve       Curve
	subject     types.Oracle
	reference   types.Oracle
	rounds      int
	parallelism int
	seed        []byte
}

// NewChecker returns a Checker for two oracles implementing curve.
func NewChecker(curve Curve, subject, reference types.Oracle, opts ...Option) *Checker {
	c := &Checker{
		curve:       curve,
		subject:     subject,
		reference:   reference,
		rounds:      DefaultRounds,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Checks   int
	Duration time.Duration
	Err      error
}

// Report collects the results of a run.
type Report struct {
	Curve     string
	Subject   string
	Reference string
	Seed      []byte
	Cases     []CaseResult
}

// Failed returns the cases that found a disagreement.
func (r *Report) Failed() []CaseResult {
	var failed []CaseResult
	for _, c := range r.Cases {
		if c.Err != nil {
			failed = append(failed, c)
		}
	}
	return failed
}

// Checks returns the total number of comparisons made.
func (r *Report) Checks() int {
	n := 0
	for _, c := range r.Cases {
		n += c.Checks
	}
	return n
}

// Err returns the first failure, or nil if every case passed.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d cases failed, first %s: %w",
		len(failed), len(r.Cases), failed[0].Name, failed[0].Err)
}

// Run executes every case. Disagreements are recorded in the Report; the
// returned error is only set when ctx ends the run early.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	seed := c.seed
	if seed == nil {
		seed = make([]byte, seedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, fmt.Errorf("failed to generate seed: %w", err)
		}
	}

	cases := c.cases()
	log.Infof("Checking %s against %s on %s: %d cases, %d rounds, seed %x",
		c.subject.Name(), c.reference.Name(), c.curve.Name, len(cases), c.rounds, seed)

	results := make([]CaseResult, len(cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i := range cases {
		i := i
		g.Go(func() error {
			tc := cases[i]
			r := c.newRun(gctx, NewRNG(seed, tc.name))

			start := time.Now()
			err := tc.fn(r)
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i] = CaseResult{
				Name:     tc.name,
				Checks:   r.checks,
				Duration: time.Since(start),
				Err:      err,
			}
			if err != nil {
				log.Warnf("Case %s failed: %v", tc.name, err)
			} else {
				log.Debugf("Case %s passed %d checks in %v", tc.name, r.checks, results[i].Duration)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Curve:     c.curve.Name,
		Subject:   c.subject.Name(),
		Reference: c.reference.Name(),
		Seed:      seed,
		Cases:     results,
	}
	log.Infof("%d checks in %d cases, %d failed", report.Checks(), len(results), len(report.Failed()))
	return report, nil
}

type testCase struct {
	name string
	fn   func(*run) error
}

func (c *Checker) cases() []testCase {
	cases := []testCase{
		{"generator", checkGenerator},
		{"add", checkAdd},
		{"is_infinity", checkIsInfinity},
		{"negate", checkNegate},
		{"double", checkDouble},
		{"scalar_mul", checkScalarMul},
		{"multi_scalar_mul", checkMultiScalarMul},
		{"is_y_negative", checkIsYNegative},
		{"invert", checkInvert},
		{"validate_curve_point", checkValidateCurvePoint},
		{"validate_scalar_field", checkValidateScalarField},
		{"from_le_bytes_mod_order", checkFromLeBytesModOrder},
		{"pow_small", checkPowSmall},
	}

	_, subjectOK := c.subject.(types.ProjectiveOracle)
	_, referenceOK := c.reference.(types.ProjectiveOracle)
	if !subjectOK || !referenceOK {
		log.Debugf("Skipping projective cases")
		return cases
	}
	return append(cases,
		testCase{"projective_generator", checkProjectiveGenerator},
		testCase{"projective_is_infinity", checkProjectiveIsInfinity},
		testCase{"projective_add", checkProjectiveAdd},
		testCase{"projective_double", checkProjectiveDouble},
		testCase{"projective_negate", checkProjectiveNegate},
		testCase{"projective_scalar_mul", checkProjectiveScalarMul},
		testCase{"to_affine", checkToAffine},
	)
}
