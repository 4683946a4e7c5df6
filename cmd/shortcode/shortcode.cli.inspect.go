package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/itsatony/go-shortcode"
)

// inspectConfig holds parsed contains/find/list command configuration
type inspectConfig struct {
	engineFlags
	inputPath string
	name      string
	format    string
	quiet     bool
}

// findOutput is the JSON form of a shortcode found in the input
type findOutput struct {
	Name        string            `json:"name"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Positional  []string          `json:"positional,omitempty"`
	Content     string            `json:"content,omitempty"`
	HasContent  bool              `json:"has_content"`
	SelfClosing bool              `json:"self_closing"`
	Raw         string            `json:"raw"`
	Line        int               `json:"line"`
	Column      int               `json:"column"`
	Offset      int               `json:"offset"`
}

// listOutput is the JSON form of a registered shortcode
type listOutput struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Callback string `json:"callback"`
}

func runContains(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseInspectFlags(CmdNameContains, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}
	if cfg.name == "" {
		fmt.Fprintln(stderr, ErrMsgMissingName)
		return ExitCodeUsageError
	}

	engine, source, code := prepareInspect(cfg, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	found := engine.Contains(string(source), cfg.name)
	if !cfg.quiet {
		if found {
			fmt.Fprintln(stdout, ContainsTextTrue)
		} else {
			fmt.Fprintln(stdout, ContainsTextFalse)
		}
	}

	if !found {
		return ExitCodeNotFound
	}
	return ExitCodeSuccess
}

func runFind(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseInspectFlags(CmdNameFind, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	engine, source, code := prepareInspect(cfg, stdin, stderr)
	if code != ExitCodeSuccess {
		return code
	}

	found := engine.Find(string(source))

	if cfg.format == OutputFormatJSON {
		out := make([]findOutput, 0, len(found))
		for _, sc := range found {
			out = append(out, findOutput{
				Name:        sc.Name,
				Attributes:  sc.Attributes.Map(),
				Positional:  sc.Attributes.Positional(),
				Content:     sc.Content,
				HasContent:  sc.HasContent,
				SelfClosing: sc.SelfClosing,
				Raw:         sc.Raw,
				Line:        sc.Position.Line,
				Column:      sc.Position.Column,
				Offset:      sc.Position.Offset,
			})
		}
		return writeJSON(out, stdout)
	}

	if len(found) == 0 {
		fmt.Fprintln(stdout, FindTextNoneFound)
		return ExitCodeSuccess
	}
	for _, sc := range found {
		fmt.Fprintf(stdout, FindTextFormat, sc.Position.Line, sc.Position.Column, sc.Name, sc.Raw)
	}
	return ExitCodeSuccess
}

func runList(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseInspectFlags(CmdNameList, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	engine, err := buildEngine(context.Background(), &cfg.engineFlags)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return ExitCodeError
	}

	names := engine.All()

	if cfg.format == OutputFormatJSON {
		out := make([]listOutput, 0, len(names))
		for _, name := range names {
			cb, _ := engine.Callback(name)
			out = append(out, listOutput{Name: name, Kind: cb.Kind().String(), Callback: cb.String()})
		}
		return writeJSON(out, stdout)
	}

	if len(names) == 0 {
		fmt.Fprintln(stdout, ListTextNoneFound)
		return ExitCodeSuccess
	}
	for _, name := range names {
		cb, _ := engine.Callback(name)
		fmt.Fprintf(stdout, ListTextFormat, name, cb.String())
	}
	return ExitCodeSuccess
}

func prepareInspect(cfg *inspectConfig, stdin io.Reader, stderr io.Writer) (*shortcode.Engine, []byte, int) {
	source, err := readInput(cfg.inputPath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return nil, nil, ExitCodeInputError
	}

	engine, err := buildEngine(context.Background(), &cfg.engineFlags)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return nil, nil, ExitCodeError
	}

	return engine, source, ExitCodeSuccess
}

func parseInspectFlags(cmd string, args []string) (*inspectConfig, error) {
	fs := newFlagSet(cmd)

	cfg := &inspectConfig{}
	cfg.engineFlags.register(fs)
	fs.StringVar(&cfg.inputPath, FlagInput, FlagDefaultInput, "")
	fs.StringVar(&cfg.inputPath, FlagInputShort, FlagDefaultInput, "")
	fs.StringVar(&cfg.name, FlagName, "", "")
	fs.StringVar(&cfg.name, FlagNameShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.quiet, FlagQuiet, false, "")
	fs.BoolVar(&cfg.quiet, FlagQuietShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, errors.New(ErrMsgUnexpectedArgs)
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func writeJSON(v any, stdout io.Writer) int {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))
	return ExitCodeSuccess
}
