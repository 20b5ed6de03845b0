package units

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// RewriteStats summarizes single stylesheet pass.
type RewriteStats struct {
	Converted int // dimension tokens converted
	Skipped   int // tokens in source unit which could not be converted
}

// Rewriter converts every length in a stylesheet from one unit into another
// (e.g. px to rem) leaving the rest of the text intact.
type Rewriter struct {
	From      Unit
	To        Unit
	Ctx       Context
	Precision int

	log *zap.Logger
}

// NewRewriter creates stylesheet rewriter. Both units must be convertible.
func NewRewriter(from, to Unit, ctx Context, precision int, log *zap.Logger) (*Rewriter, error) {
	if err := checkConvertible(from); err != nil {
		return nil, err
	}
	if err := checkConvertible(to); err != nil {
		return nil, err
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Rewriter{
		From:      from,
		To:        to,
		Ctx:       ctx,
		Precision: precision,
		log:       log.Named("rewriter"),
	}, nil
}

// Rewrite streams converted stylesheet into w.
func (r *Rewriter) Rewrite(w io.Writer, src []byte) (RewriteStats, error) {
	var (
		stats RewriteStats
		buf   bytes.Buffer
	)
	buf.Grow(len(src))

	lex := css.NewLexer(parse.NewInputBytes(src))
	for {
		tt, data := lex.Next()
		if tt == css.ErrorToken {
			if err := lex.Err(); err != nil && !errors.Is(err, io.EOF) {
				return stats, fmt.Errorf("unable to tokenize stylesheet: %w", err)
			}
			break
		}
		if tt != css.DimensionToken {
			buf.Write(data)
			continue
		}

		num, suffix := splitDimension(string(data))
		if u, err := LookupUnit(suffix); err != nil || u != r.From {
			buf.Write(data)
			continue
		}

		out, err := r.convert(num)
		if err != nil {
			stats.Skipped++
			r.log.Debug("Leaving length as is", zap.ByteString("token", data), zap.Error(err))
			buf.Write(data)
			continue
		}
		stats.Converted++
		buf.WriteString(out)
	}

	r.log.Debug("Stylesheet rewritten",
		zap.Stringer("from", r.From), zap.Stringer("to", r.To),
		zap.Int("converted", stats.Converted), zap.Int("skipped", stats.Skipped))

	if _, err := buf.WriteTo(w); err != nil {
		return stats, fmt.Errorf("unable to write stylesheet: %w", err)
	}
	return stats, nil
}

func (r *Rewriter) convert(num string) (string, error) {
	l, err := ParseLength(num + r.From.Suffix())
	if err != nil {
		return "", err
	}
	res, err := ConvertLength(l, r.To, r.Ctx)
	if err != nil {
		return "", err
	}
	return res.Format(r.Precision), nil
}
