package main

import (
	"context"
	"errors"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ubelt/contrast"
	"ubelt/state"
)

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func runContrast(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("contrast")

	args := cmd.Args()
	if args.Len() > 2 {
		return errors.New("expected [FOREGROUND [BACKGROUND]]")
	}

	fgSpec, bgSpec := args.Get(0), args.Get(1)
	if env.Cfg != nil {
		if len(fgSpec) == 0 {
			fgSpec = env.Cfg.Contrast.Foreground
		}
		if len(bgSpec) == 0 {
			bgSpec = env.Cfg.Contrast.Background
		}
	}
	if len(fgSpec) == 0 {
		return errors.New("no foreground color has been specified")
	}
	if len(bgSpec) == 0 {
		bgSpec = contrast.White.Hex()
	}

	fg, err := contrast.ParseColor(fgSpec)
	if err != nil {
		return fmt.Errorf("unable to parse foreground color: %w", err)
	}
	bg, err := contrast.ParseColor(bgSpec)
	if err != nil {
		return fmt.Errorf("unable to parse background color: %w", err)
	}

	res, err := contrast.Evaluate(fg, bg)
	if err != nil {
		return fmt.Errorf("unable to compute contrast: %w", err)
	}
	log.Debug("Contrast computed", zap.Stringer("fg", fg), zap.Stringer("bg", bg), zap.Float64("ratio", res.Ratio))

	fmt.Fprintf(env.Out, "%s on %s\n", fg.Hex(), bg.Hex())
	fmt.Fprintf(env.Out, "ratio: %s\n", contrast.FormatRatio(res.Ratio))
	fmt.Fprintf(env.Out, "AA:    %s\n", passFail(res.AA))
	fmt.Fprintf(env.Out, "AAA:   %s\n", passFail(res.AAA))

	if cmd.Bool("suggest") {
		text, err := contrast.SuggestText(bg)
		if err != nil {
			return fmt.Errorf("unable to suggest text color: %w", err)
		}
		fmt.Fprintf(env.Out, "suggested text: %s\n", text.Hex())
	}
	return nil
}
