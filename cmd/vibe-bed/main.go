// Package main provides the vibe-bed command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

// usageError marks errors caused by bad command-line input.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	return execute(newRootCmd(), args)
}

// execute runs root with args and maps the outcome to an exit code.
func execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	stderr := root.ErrOrStderr()
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintf(stderr, "Run 'vibe-bed --help' for usage.\n")
		return ExitUsage
	}
	return ExitError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vibe-bed",
		Short: "Genomic interval algebra on BED files",
		Long: `vibe-bed sorts, merges, intersects and otherwise combines genomic intervals.
Inputs are BED files (plain, gzip or lz4; '-' for stdin) or DuckDB tables
written as duckdb:<table> together with --duckdb <path>.`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-bed.yaml)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.IntP("threads", "t", 0, "Worker goroutines (default: number of CPUs)")
	pf.String("duckdb", "", "DuckDB database used by duckdb:<table> inputs and --to-duckdb")
	pf.String("to-duckdb", "", "Write results to this DuckDB table instead of BED output")
	pf.StringP("output", "o", "-", "Output BED file (.gz and .lz4 are compressed)")
	for _, name := range []string{"verbose", "threads", "duckdb", "to-duckdb", "output"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}

	cobra.OnInitialize(initConfig)

	root.AddCommand(
		newSortCmd(),
		newMergeCmd(),
		newIntersectCmd(),
		newClosestCmd(),
		newSubtractCmd(),
		newComplementCmd(),
		newClusterCmd(),
		newSegmentCmd(),
		newQueryCmd(),
		newCoverageCmd(),
		newSampleCmd(),
		newLoadCmd(),
		newConfigCmd(),
	)
	return root
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".vibe-bed")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_BED")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: could not read config %s: %v\n", cfgFile, err)
		}
	}
}

func initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if viper.GetBool("verbose") {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.OutputPaths = []string{"stderr"}
		l, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	logger = l
	return nil
}

// defaultConfigPath is where config set writes when no file was loaded.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vibe-bed.yaml"), nil
}
