package main

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/athanorlabs/go-pasta/pallas"
	"github.com/athanorlabs/go-pasta/types"
	"github.com/athanorlabs/go-pasta/vesta"
)

// command is a parser subcommand.
type command struct {
	name, short, long string
	data              interface{}
}

func commands() []command {
	return []command{
		{"generator", "Print the generator", "", &generatorCmd{}},
		{"add", "Add two points", "Add two points given as <x1> <y1> <x2> <y2>. " +
			"The pair 0 0 is the point at infinity.", &addCmd{}},
		{"double", "Double a point", "", &doubleCmd{}},
		{"negate", "Negate a point", "", &negateCmd{}},
		{"is-infinity", "Report whether a point is the point at infinity", "", &isInfinityCmd{}},
		{"is-y-negative", "Report whether the y coordinate of a point is negative", "", &isYNegativeCmd{}},
		{"mul", "Multiply a point by a scalar", "", &mulCmd{}},
		{"msm", "Multi-scalar multiplication", "Compute the sum of s_i * P_i for " +
			"arguments given as <x1> <y1> <s1> <x2> <y2> <s2> ...", &msmCmd{}},
		{"to-affine", "Normalize a projective point", "", &toAffineCmd{}},
		{"validate", "Check that a point is on the curve", "", &validateCmd{}},
		{"validate-scalar", "Check that a value is a canonical scalar", "", &validateScalarCmd{}},
		{"invert-fr", "Invert a scalar field element", "", &invertCmd{scalar: true}},
		{"invert-fq", "Invert a base field element", "", &invertCmd{}},
		{"reduce", "Reduce little-endian hex bytes modulo the group order", "", &reduceCmd{}},
		{"pow", "Raise a field element to a power", "Compute <base>^<exponent> " +
			"modulo the scalar field, or modulo <modulus> when given.", &powCmd{}},
		{"hash", "Hash a message to a scalar with Keccak-256", "", &hashCmd{}},
		{"random", "Print a random scalar and its multiple of the generator", "", &randomCmd{}},
		{"check", "Cross-check the affine and projective implementations", "", newCheckCmd()},
	}
}

type generatorCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *generatorCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) != 0 {
		return errors.New("generator takes no arguments")
	}
	ctx, cancel := commandContext()
	defer cancel()

	g, err := activeOracle.Generator(ctx)
	if err != nil {
		return err
	}
	printPoint(g)
	return nil
}

type addCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *addCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 2)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	sum, err := activeOracle.Add(ctx, points[0], points[1])
	if err != nil {
		return err
	}
	printPoint(sum)
	return nil
}

type doubleCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *doubleCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 1)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	p, err := activeOracle.Double(ctx, points[0])
	if err != nil {
		return err
	}
	printPoint(p)
	return nil
}

type negateCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *negateCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 1)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	p, err := activeOracle.Negate(ctx, points[0])
	if err != nil {
		return err
	}
	printPoint(p)
	return nil
}

type isInfinityCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *isInfinityCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 1)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	inf, err := activeOracle.IsInfinity(ctx, points[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, inf)
	return nil
}

type isYNegativeCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *isYNegativeCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 1)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	neg, err := activeOracle.IsYNegative(ctx, points[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, neg)
	return nil
}

type mulCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *mulCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	values, err := parseNumbers(args, "x", "y", "scalar")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	p := types.AffinePoint{X: values[0], Y: values[1]}
	product, err := activeOracle.ScalarMul(ctx, p, values[2])
	if err != nil {
		return err
	}
	printPoint(product)
	return nil
}

type msmCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *msmCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args)%3 != 0 {
		return fmt.Errorf("expected <x> <y> <scalar> triples, got %d arguments", len(args))
	}

	n := len(args) / 3
	points := make([]types.AffinePoint, n)
	scalars := make([]types.U256, n)
	for i := 0; i < n; i++ {
		values, err := parseNumbers(args[3*i:3*i+3],
			fmt.Sprintf("x%d", i+1), fmt.Sprintf("y%d", i+1), fmt.Sprintf("s%d", i+1))
		if err != nil {
			return err
		}
		points[i] = types.AffinePoint{X: values[0], Y: values[1]}
		scalars[i] = values[2]
	}
	ctx, cancel := commandContext()
	defer cancel()

	sum, err := activeOracle.MultiScalarMul(ctx, points, scalars)
	if err != nil {
		return err
	}
	printPoint(sum)
	return nil
}

type toAffineCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *toAffineCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	values, err := parseNumbers(args, "x", "y", "z")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	p := types.ProjectivePoint{X: values[0], Y: values[1], Z: values[2]}
	affine, err := activeOracle.ToAffine(ctx, p)
	if err != nil {
		return err
	}
	printPoint(affine)
	return nil
}

type validateCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *validateCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	points, err := parsePoints(args, 1)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	if err := activeOracle.ValidateCurvePoint(ctx, points[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, "valid")
	return nil
}

type validateScalarCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *validateScalarCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	values, err := parseNumbers(args, "scalar")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	if err := activeOracle.ValidateScalarField(ctx, values[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, "valid")
	return nil
}

// invertCmd inverts in the scalar field when scalar is set and in the base
// field otherwise.
type invertCmd struct {
	scalar bool
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *invertCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	values, err := parseNumbers(args, "value")
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	invert := activeOracle.InvertFq
	if cmd.scalar {
		invert = activeOracle.InvertFr
	}
	inv, err := invert(ctx, values[0])
	if err != nil {
		return err
	}
	printNumber(inv)
	return nil
}

type reduceCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *reduceCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("expected one <hex> argument")
	}
	b, err := parseHex(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	s, err := activeOracle.FromLeBytesModOrder(ctx, b)
	if err != nil {
		return err
	}
	printNumber(s)
	return nil
}

type powCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *powCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	names := []string{"base", "exponent"}
	if len(args) == 3 {
		names = append(names, "modulus")
	}
	values, err := parseNumbers(args, names...)
	if err != nil {
		return err
	}
	modulus := activeCurve.ScalarModulus
	if len(values) == 3 {
		modulus = values[2]
	}
	ctx, cancel := commandContext()
	defer cancel()

	v, err := activeOracle.PowSmall(ctx, values[0], values[1], modulus)
	if err != nil {
		return err
	}
	printNumber(v)
	return nil
}

type hashCmd struct {
	Hex bool `short:"x" long:"hex" description:"Treat the message as hex encoded bytes"`
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *hashCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	msg := []byte(strings.Join(args, " "))
	if cmd.Hex {
		if len(args) != 1 {
			return errors.New("expected one <hex> argument")
		}
		var err error
		if msg, err = parseHex(args[0]); err != nil {
			return err
		}
	}

	hashToScalar := pallas.HashToScalar
	if activeCurve.Name == vesta.Name {
		hashToScalar = vesta.HashToScalar
	}
	printNumber(hashToScalar(msg))
	return nil
}

type randomCmd struct{}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *randomCmd) Execute(args []string) error {
	if err := setupGlobalConfig(); err != nil {
		return err
	}
	if len(args) != 0 {
		return errors.New("random takes no arguments")
	}

	randomScalar := pallas.RandomScalar
	if activeCurve.Name == vesta.Name {
		randomScalar = vesta.RandomScalar
	}
	s, err := randomScalar(rand.Reader)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()
	g, err := activeOracle.Generator(ctx)
	if err != nil {
		return err
	}
	p, err := activeOracle.ScalarMul(ctx, g, s)
	if err != nil {
		return err
	}
	printNumber(s)
	printPoint(p)
	return nil
}
