// Command segdemo builds and runs a handful of segments end to end,
// the way a smoke test for the runtime would: an arithmetic chain with
// no arguments, a conditional join, and a one-argument segment that
// hashes a uint256 with Keccak-256. It exists to exercise the package
// surface outside of *_test.go files.
//
// Usage:
//
//	segdemo [flags]
//
// Flags:
//
//	--verbosity   Log level: debug, info, warn, error (default: info)
//	--format      Log output format: json, text, color (default: json)
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/holiman/uint256"

	"github.com/segmentrt/segment/pkg/dynseg"
	"github.com/segmentrt/segment/pkg/litpush"
	"github.com/segmentrt/segment/pkg/seglog"
	"github.com/segmentrt/segment/pkg/segops"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	verbosity, format, exit, code := parseFlags(args)
	if exit {
		return code
	}

	if env := os.Getenv("SEGMENTRT_LOG_LEVEL"); env != "" {
		verbosity = env
	}
	log := newLogger(parseLevel(verbosity), format)
	seglog.SetDefault(log)

	log.Info("segdemo starting", "verbosity", verbosity)

	if err := runArithmeticChain(log); err != nil {
		log.Error("arithmetic chain failed", "err", err)
		return 1
	}
	if err := runConditionalJoin(log); err != nil {
		log.Error("conditional join failed", "err", err)
		return 1
	}
	if err := runMixedTypeScalars(log); err != nil {
		log.Error("mixed-type scalars failed", "err", err)
		return 1
	}

	log.Info("segdemo done")
	return 0
}

// runArithmeticChain builds a no-argument segment that pushes two
// literals through pkg/litpush and adds them with an inline uint32
// operation, then calls it and reports the result.
func runArithmeticChain(log *seglog.Logger) error {
	sub := log.Module("builder").With("scenario", "arithmetic_chain")

	s := dynseg.New0()
	if err := litpush.Push(s, 30, litpush.U32); err != nil {
		return err
	}
	if err := litpush.Push(s, 12, litpush.U32); err != nil {
		return err
	}
	if err := dynseg.Op2(s, func(a, b uint32) uint32 { return a + b }); err != nil {
		return err
	}

	sub.Debug("built segment", "describe", s.Describe())

	got, err := dynseg.Call0[uint32](s)
	if err != nil {
		return err
	}
	sub.Info("result", "value", got)
	fmt.Printf("arithmetic chain: 30 + 12 = %d\n", got)
	return nil
}

// runConditionalJoin builds a segment whose root pushes two booleans,
// ANDs them, and joins between a then-fragment and an else-fragment
// that each push a different uint32 constant.
func runConditionalJoin(log *seglog.Logger) error {
	sub := log.Module("builder").With("scenario", "conditional_join")

	s := dynseg.New0()
	if err := dynseg.Op0(s, func() bool { return true }); err != nil {
		return err
	}
	if err := dynseg.Op0(s, func() bool { return false }); err != nil {
		return err
	}
	if err := dynseg.Op2(s, func(a, b bool) bool { return a && b }); err != nil {
		return err
	}

	then := dynseg.NewFragment(s)
	if err := dynseg.Op0(then, func() uint32 { return 42 }); err != nil {
		return err
	}

	els := dynseg.NewFragment(s)
	if err := dynseg.Op0(els, func() uint32 { return 2 }); err != nil {
		return err
	}

	if err := dynseg.Join2(s, then, els); err != nil {
		return err
	}

	sub.Debug("built segment", "describe", s.Describe())

	got, err := dynseg.Call0[uint32](s)
	if err != nil {
		return err
	}
	sub.Info("result", "value", got)
	fmt.Printf("conditional join: true && false ? 42 : 2 = %d\n", got)
	return nil
}

// runMixedTypeScalars builds a one-argument segment that takes a
// uint256.Int, hashes its bytes with Keccak-256, and returns the
// digest, exercising segops against a caller-supplied argument.
func runMixedTypeScalars(log *seglog.Logger) error {
	sub := log.Module("builder").With("scenario", "mixed_type_scalars")

	s := dynseg.New1[uint256.Int]()
	if err := dynseg.Op1(s, func(v uint256.Int) []byte {
		b := v.Bytes32()
		return b[:]
	}); err != nil {
		return err
	}
	if err := dynseg.Op1(s, segops.Keccak256()); err != nil {
		return err
	}

	sub.Debug("built segment", "describe", s.Describe())

	arg := *uint256.NewInt(0xdeadbeef)
	got, err := dynseg.Call1[uint256.Int, [32]byte](s, arg)
	if err != nil {
		return err
	}
	sub.Info("result", "digest_prefix", got[0])
	fmt.Printf("keccak256(uint256(0xdeadbeef)) = %x\n", got)
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds a Logger for the requested output format.
func newLogger(level slog.Level, format string) *seglog.Logger {
	switch format {
	case "text":
		return seglog.NewText(level, false)
	case "color":
		return seglog.NewText(level, true)
	default:
		return seglog.New(level)
	}
}

// parseFlags parses CLI arguments into a verbosity and log-format string.
// Returns those, whether the caller should exit immediately, and the exit
// code.
func parseFlags(args []string) (string, string, bool, int) {
	fs := flag.NewFlagSet("segdemo", flag.ContinueOnError)
	verbosity := fs.String("verbosity", "info", "log level: debug, info, warn, error")
	format := fs.String("format", "json", "log output format: json, text, color")

	if err := fs.Parse(args); err != nil {
		return "", "", true, 2
	}
	return *verbosity, *format, false, 0
}
