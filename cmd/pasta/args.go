package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/athanorlabs/go-pasta/types"
)

// parseNumbers parses one decimal or 0x-prefixed hex number per name.
func parseNumbers(args []string, names ...string) ([]types.U256, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("expected %d arguments <%s>, got %d",
			len(names), strings.Join(names, "> <"), len(args))
	}
	values := make([]types.U256, len(args))
	for i, arg := range args {
		v, err := types.ParseU256(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		values[i] = v
	}
	return values, nil
}

// parsePoints parses args as consecutive x y pairs.
func parsePoints(args []string, n int) ([]types.AffinePoint, error) {
	names := make([]string, 0, 2*n)
	for i := 1; i <= n; i++ {
		names = append(names, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if n == 1 {
		names = []string{"x", "y"}
	}
	values, err := parseNumbers(args, names...)
	if err != nil {
		return nil, err
	}
	points := make([]types.AffinePoint, n)
	for i := range points {
		points[i] = types.AffinePoint{X: values[2*i], Y: values[2*i+1]}
	}
	return points, nil
}

// parseHex decodes a hex byte string with an optional 0x prefix.
func parseHex(arg string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", arg, err)
	}
	return b, nil
}

func printPoint(p types.AffinePoint) {
	fmt.Fprintf(out, "%s %s\n", p.X, p.Y)
}

func printNumber(v types.U256) {
	fmt.Fprintln(out, v)
}
