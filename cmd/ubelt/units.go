package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"ubelt/common"
	"ubelt/state"
	"ubelt/units"
)

// conversionSettings combines configuration with command line overrides.
func conversionSettings(env *state.LocalEnv, cmd *cli.Command) (units.Context, int) {
	uctx, precision := env.UnitsContext(), env.Precision()
	if cmd.IsSet("base") {
		uctx.BaseFontSize = cmd.Float("base")
	}
	if cmd.IsSet("vw") {
		uctx.ViewportWidth = cmd.Float("vw")
	}
	if cmd.IsSet("vh") {
		uctx.ViewportHeight = cmd.Float("vh")
	}
	if cmd.IsSet("precision") {
		precision = cmd.Int("precision")
	}
	return uctx, precision
}

// parseValue accepts bare number with separate unit or CSS length.
func parseValue(value, unit string) (units.Length, error) {
	if len(unit) == 0 {
		return units.ParseLength(value)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return units.Length{}, common.InvalidArgument("value", value, "not a number")
	}
	u, err := units.LookupUnit(unit)
	if err != nil {
		return units.Length{}, err
	}
	return units.Length{Value: v, Unit: u}, nil
}

func runUnitsConvert(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("units")

	var (
		value, from, to string
		args            = cmd.Args()
	)
	switch args.Len() {
	case 2:
		value, to = args.Get(0), args.Get(1)
	case 3:
		value, from, to = args.Get(0), args.Get(1), args.Get(2)
	default:
		return errors.New("expected VALUE FROM TO or LENGTH TO")
	}

	src, err := parseValue(value, from)
	if err != nil {
		return fmt.Errorf("unable to parse source length: %w", err)
	}
	target, err := units.LookupUnit(to)
	if err != nil {
		return fmt.Errorf("unable to parse target unit: %w", err)
	}

	uctx, precision := conversionSettings(env, cmd)
	res, err := units.ConvertLength(src, target, uctx)
	if err != nil {
		return fmt.Errorf("unable to convert %s to %s: %w", src.Format(precision), target, err)
	}

	log.Debug("Converted",
		zap.Stringer("from", src), zap.Stringer("to", target), zap.Float64("result", res.Value),
		zap.Float64("base", uctx.BaseFontSize), zap.Float64("vw", uctx.ViewportWidth), zap.Float64("vh", uctx.ViewportHeight))

	_, err = fmt.Fprintln(env.Out, units.FormatValue(res.Value, precision))
	return err
}

func runUnitsTable(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("units")

	args := cmd.Args()
	if args.Len() < 1 || args.Len() > 2 {
		return errors.New("expected VALUE [FROM] or LENGTH")
	}
	src, err := parseValue(args.Get(0), args.Get(1))
	if err != nil {
		return fmt.Errorf("unable to parse source length: %w", err)
	}

	uctx, precision := conversionSettings(env, cmd)
	all, err := units.ConvertAll(src, uctx)
	if err != nil {
		return fmt.Errorf("unable to convert %s: %w", src.Format(precision), err)
	}
	log.Debug("Converted to all units", zap.Stringer("from", src), zap.Int("results", len(all)))

	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	for _, l := range all {
		fmt.Fprintf(tw, "%s\t%s\n", l.Unit, units.FormatValue(l.Value, precision))
	}
	return tw.Flush()
}

func runUnitsRewrite(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("rewrite")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no source stylesheet has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	from, err := units.LookupUnit(cmd.String("from"))
	if err != nil {
		return fmt.Errorf("unable to parse source unit: %w", err)
	}
	to, err := units.LookupUnit(cmd.String("to"))
	if err != nil {
		return fmt.Errorf("unable to parse target unit: %w", err)
	}

	uctx, precision := conversionSettings(env, cmd)
	rw, err := units.NewRewriter(from, to, uctx, precision, log)
	if err != nil {
		return fmt.Errorf("unable to prepare rewriter: %w", err)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	if err := env.Rpt.StoreCopy("source/"+filepath.Base(src), src); err != nil {
		log.Warn("Unable to store source stylesheet in report", zap.Error(err))
	}

	// stylesheets from old sites may come in legacy encodings
	if cp := cmd.String("charset"); len(cp) > 0 {
		enc, err := ianaindex.IANA.Encoding(cp)
		if err != nil {
			return fmt.Errorf("unknown character set %q: %w", cp, err)
		}
		if enc != nil {
			if data, err = enc.NewDecoder().Bytes(data); err != nil {
				return fmt.Errorf("unable to decode stylesheet from %q: %w", cp, err)
			}
			n, _ := ianaindex.IANA.Name(enc)
			log.Debug("Stylesheet decoded", zap.String("charset", n))
		}
	}

	var out bytes.Buffer
	stats, err := rw.Rewrite(&out, data)
	if err != nil {
		return err
	}
	log.Debug("Rewrite completed", zap.String("source", src), zap.Int("converted", stats.Converted), zap.Int("skipped", stats.Skipped))
	if stats.Skipped > 0 {
		log.Warn("Some lengths could not be converted and were left as is", zap.Int("count", stats.Skipped))
	}

	if len(dst) == 0 {
		_, err = out.WriteTo(env.Out)
		return err
	}
	if err := os.WriteFile(dst, out.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(dst), dst)
	return nil
}
