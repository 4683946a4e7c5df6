package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/itsatony/go-shortcode"
)

// transformConfig holds parsed render/strip/unwrap command configuration
type transformConfig struct {
	engineFlags
	inputPath  string
	outputPath string
	strategy   string
}

func runTransform(cmd string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseTransformFlags(cmd, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	ctx := context.Background()

	var opts []shortcode.Option
	if cfg.strategy != "" {
		opts = append(opts, shortcode.WithErrorStrategy(shortcode.ParseErrorStrategy(cfg.strategy)))
	}

	engine, err := buildEngine(ctx, &cfg.engineFlags, opts...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeError
	}

	var result string
	switch cmd {
	case CmdNameStrip:
		result = engine.Strip(string(source))
	case CmdNameUnwrap:
		result = engine.Unwrap(string(source))
	default:
		result, err = engine.Compile(ctx, string(source))
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCompileFailed, err)
			return ExitCodeError
		}
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseTransformFlags(cmd string, args []string) (*transformConfig, error) {
	fs := newFlagSet(cmd)

	cfg := &transformConfig{}
	cfg.engineFlags.register(fs)
	fs.StringVar(&cfg.inputPath, FlagInput, FlagDefaultInput, "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, FlagDefaultInput, "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	if cmd == CmdNameRender {
		fs.StringVar(&cfg.strategy, FlagStrategy, "", "")
		fs.StringVar(&cfg.strategy, FlagStrategyShort, "", "")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, errors.New(ErrMsgUnexpectedArgs)
	}
	if cfg.strategy != "" && !shortcode.IsValidErrorStrategy(cfg.strategy) {
		return nil, errors.New(ErrMsgInvalidStrategy)
	}

	return cfg, nil
}
