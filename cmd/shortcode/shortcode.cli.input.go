package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/itsatony/go-shortcode"
	"go.uber.org/zap"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// engineFlags are shared by every command that needs an engine
type engineFlags struct {
	configPath string
	verbose    bool
}

func (f *engineFlags) register(fs *flag.FlagSet) {
	defaultConfig := os.Getenv(EnvConfigPath)
	fs.StringVar(&f.configPath, FlagConfig, defaultConfig, "")
	fs.StringVar(&f.configPath, FlagConfigShort, defaultConfig, "")
	fs.BoolVar(&f.verbose, FlagVerbose, false, "")
	fs.BoolVar(&f.verbose, FlagVerboseShort, false, "")
}

// buildEngine creates an engine from the config file, or an empty engine
// when no config is given.
func buildEngine(ctx context.Context, f *engineFlags, opts ...shortcode.Option) (*shortcode.Engine, error) {
	logger := zap.NewNop()
	if f.verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}
	opts = append(opts, shortcode.WithLogger(logger))

	if f.configPath == "" {
		return shortcode.New(opts...)
	}

	cfg, err := shortcode.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}
	return shortcode.NewFromConfig(ctx, cfg, opts...)
}

// newFlagSet creates a silent flag set for a command
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages
	return fs
}
