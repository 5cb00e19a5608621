package main

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	flags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"

	"github.com/athanorlabs/go-pasta/pallas"
	"github.com/athanorlabs/go-pasta/types"
	"github.com/athanorlabs/go-pasta/vesta"
)

func execute(t *testing.T, args ...string) (string, error) {
	var buf bytes.Buffer
	out = &buf
	t.Cleanup(func() {
		out = os.Stdout
	})
	err := run(append([]string{"--debuglevel", "off"}, args...))
	return strings.TrimSpace(buf.String()), err
}

func requireOutput(t *testing.T, expected string, args ...string) {
	got, err := execute(t, args...)
	require.NoError(t, err)
	require.Equal(t, expected, got)
}

func requireRejection(t *testing.T, description string, args ...string) {
	_, err := execute(t, args...)
	var rejection types.Error
	require.True(t, errors.As(err, &rejection), err)
	require.Equal(t, description, rejection.Description)
}

func minusOne(modulus string) string {
	m, ok := new(big.Int).SetString(modulus, 10)
	if !ok {
		panic(modulus)
	}
	return m.Sub(m, big.NewInt(1)).String()
}

func TestGenerator(t *testing.T) {
	requireOutput(t, minusOne(pallas.BaseModulus)+" 2", "generator")
	requireOutput(t, minusOne(vesta.BaseModulus)+" 2", "--curve", "Vesta", "generator")
	requireOutput(t, minusOne(vesta.BaseModulus)+" 2", "--curve", "vesta", "generator")
	requireOutput(t, minusOne(pallas.BaseModulus)+" 2", "--projective", "generator")
}

func TestPointCommands(t *testing.T) {
	for _, curve := range []string{"Pallas", "Vesta"} {
		for _, projective := range []bool{false, true} {
			global := []string{"-c", curve}
			if projective {
				global = append(global, "-p")
			}
			cmd := func(args ...string) string {
				got, err := execute(t, append(global, args...)...)
				require.NoError(t, err)
				return got
			}

			g := strings.Fields(cmd("generator"))
			require.Len(t, g, 2)

			require.Equal(t, strings.Join(g, " "), cmd("add", g[0], g[1], "0", "0"))
			require.Equal(t, "0 0", cmd("add", "0", "0", "0", "0"))

			double := cmd("double", g[0], g[1])
			require.Equal(t, double, cmd("add", g[0], g[1], g[0], g[1]))
			require.Equal(t, double, cmd("mul", g[0], g[1], "2"))

			triple := cmd("mul", g[0], g[1], "3")
			require.Equal(t, triple, cmd("msm", g[0], g[1], "1", g[0], g[1], "2"))
			require.Equal(t, "0 0", cmd("msm"))

			minusG := strings.Fields(cmd("negate", g[0], g[1]))
			require.Equal(t, g[0], minusG[0])
			require.Equal(t, "0 0", cmd("add", g[0], g[1], minusG[0], minusG[1]))

			require.Equal(t, "true", cmd("is-y-negative", g[0], g[1]))
			require.Equal(t, "false", cmd("is-y-negative", minusG[0], minusG[1]))
			require.Equal(t, "true", cmd("is-infinity", "0", "0"))
			require.Equal(t, "false", cmd("is-infinity", g[0], g[1]))
			require.Equal(t, "valid", cmd("validate", g[0], g[1]))
		}
	}
}

func TestToAffine(t *testing.T) {
	// (x, y) scaled by Z = 2
	p, _ := new(big.Int).SetString(pallas.BaseModulus, 10)
	x := new(big.Int).Sub(p, big.NewInt(2))
	requireOutput(t, minusOne(pallas.BaseModulus)+" 2", "to-affine", x.String(), "4", "2")
	requireOutput(t, "0 0", "to-affine", "0", "1", "0")
}

func TestFieldCommands(t *testing.T) {
	requireOutput(t, "1", "reduce", "0x0100")
	requireOutput(t, "1024", "pow", "2", "10")
	requireOutput(t, "1024", "pow", "0x2", "0xa", pallas.BaseModulus)
	requireOutput(t, "valid", "validate-scalar", minusOne(pallas.ScalarModulus))

	// 2 * (r+1)/2 = 1
	r, _ := new(big.Int).SetString(pallas.ScalarModulus, 10)
	half := new(big.Int).Add(r, big.NewInt(1))
	half.Rsh(half, 1)
	requireOutput(t, half.String(), "invert-fr", "2")

	p, _ := new(big.Int).SetString(pallas.BaseModulus, 10)
	half.Add(p, big.NewInt(1)).Rsh(half, 1)
	requireOutput(t, half.String(), "invert-fq", "2")
}

func TestHash(t *testing.T) {
	requireOutput(t, pallas.HashToScalar([]byte("hello world")).String(), "hash", "hello", "world")
	requireOutput(t, vesta.HashToScalar([]byte{0xca, 0xfe}).String(), "-c", "Vesta", "hash", "--hex", "cafe")
}

func TestRandom(t *testing.T) {
	got, err := execute(t, "random")
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)

	g, err := execute(t, "generator")
	require.NoError(t, err)
	gx := strings.Fields(g)
	expected, err := execute(t, "mul", gx[0], gx[1], lines[0])
	require.NoError(t, err)
	require.Equal(t, expected, lines[1])
}

func TestRejections(t *testing.T) {
	requireRejection(t, "Pallas: invalid point", "validate", "1", "3")
	requireRejection(t, "Pallas: invalid point", "-c", "Vesta", "validate", "0", "2")
	requireRejection(t, "Pallas: invalid scalar field", "validate-scalar", pallas.ScalarModulus)
	requireRejection(t, "Pallas: division by zero", "invert-fr", "0")
	requireRejection(t, "Pallas: division by zero", "-c", "Vesta", "invert-fq", "0")
	requireRejection(t, "Pallas: invalid base field", "invert-fq", pallas.BaseModulus)
	requireRejection(t, "Pallas: unknown modulus", "pow", "2", "2", "7")
	requireRejection(t, "Pallas: invalid scalar field", "mul", "0", "0", pallas.ScalarModulus)
}

func TestArgumentErrors(t *testing.T) {
	_, err := execute(t, "add", "1", "2")
	require.EqualError(t, err, "expected 4 arguments <x1> <y1> <x2> <y2>, got 2")

	_, err = execute(t, "double", "1", "nope")
	require.Error(t, err)
	require.Contains(t, err.Error(), "y:")

	_, err = execute(t, "msm", "1", "2")
	require.Error(t, err)

	_, err = execute(t, "reduce", "zz")
	require.Error(t, err)

	_, err = execute(t, "-c", "secp256k1", "generator")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown curve")

	_, err = execute(t, "-d", "loud", "generator")
	require.Error(t, err)

	_, err = execute(t, "--timeout", "0s", "generator")
	require.Error(t, err)

	_, err = execute(t, "-h")
	var flagsErr *flags.Error
	require.True(t, errors.As(err, &flagsErr))
	require.Equal(t, flags.ErrHelp, flagsErr.Type)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pasta.conf")
	conf := "[Application Options]\ncurve = Vesta\nprojective = true\n"
	require.NoError(t, os.WriteFile(path, []byte(conf), 0600))

	requireOutput(t, minusOne(vesta.BaseModulus)+" 2", "-C", path, "generator")
	require.Equal(t, "Vesta", cfg.Curve)
	require.True(t, cfg.Projective)

	// the command line takes precedence
	requireOutput(t, minusOne(pallas.BaseModulus)+" 2", "--configfile", path, "-c", "Pallas", "generator")

	_, err := execute(t, "-C", filepath.Join(t.TempDir(), "missing.conf"), "generator")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	for _, curve := range []string{"Pallas", "Vesta"} {
		got, err := execute(t, "-c", curve, "check", "--rounds", "2", "--seed", "00ff", "-j", "4")
		require.NoError(t, err)
		require.Contains(t, got, "is_y_negative")
		require.Contains(t, got, "to_affine")
		require.Contains(t, got, curve+": "+curve+" against "+curve+" (projective)")
		require.Contains(t, got, "seed 00ff")
		require.NotContains(t, got, "oracles disagree")
	}

	_, err := execute(t, "check", "--seed", "xyz")
	require.Error(t, err)
}
