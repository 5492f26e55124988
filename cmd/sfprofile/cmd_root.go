package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sfprofile/config"
	"github.com/dhamidi/sfprofile/diag"
	"github.com/dhamidi/sfprofile/format"
	"github.com/dhamidi/sfprofile/profile"
	"github.com/dhamidi/sfprofile/watch"
)

func newRootCmd() *cobra.Command {
	var (
		outputFormat string
		configPath   string
		logPath      string
		name         string
		verbose      int
		watchFile    bool
	)

	cmd := &cobra.Command{
		Use:          "sfprofile <file>",
		Short:        "Decode a Salesforce profile into its access-control records",
		Version:      version,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return cmd.Usage()
			}
			filename := args[0]

			cfg, err := loadConfig(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = outputFormat
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Verbosity = verbose
			}
			if cmd.Flags().Changed("log") {
				cfg.LogFile = logPath
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			diag.Configure(cfg.Verbosity, cfg.LogFile)

			if name == "" {
				name = profileName(filename)
			}

			run := func() error {
				return parseFile(cmd.OutOrStdout(), filename, name, cfg.Format)
			}

			if !watchFile {
				return run()
			}

			if err := run(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
			w, err := watch.New(filename, cfg.Watch.Debounce)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return w.Run(ctx, run)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", config.DefaultFormat, "output format ("+strings.Join(format.Names, ", ")+")")
	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "configuration file")
	cmd.Flags().StringVar(&logPath, "log", "", "write log output to this file instead of stderr")
	cmd.Flags().StringVar(&name, "name", "", "profile name (defaults to the file name without extension)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	cmd.Flags().BoolVarP(&watchFile, "watch", "w", false, "parse again whenever the file changes")

	return cmd
}

// loadConfig reads the configuration file. The default path may be absent;
// an explicitly requested one must exist.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	if explicit {
		return config.Load(path)
	}
	return config.LoadOptional(path)
}

// parseFile reads and decodes one profile document. Nothing is parsed when
// the file cannot be read. On a parse failure the partial profile is still
// written before the error is returned.
func parseFile(w io.Writer, filename, name, encoding string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	enc, err := format.NewEncoder(encoding, w)
	if err != nil {
		return err
	}

	p, parseErr := profile.Parse(string(data),
		profile.WithName(name),
		profile.WithSink(diag.NewLogSink("sfprofile")),
	)

	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if parseErr != nil {
		return fmt.Errorf("%s: %w", filename, parseErr)
	}
	return nil
}

func profileName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
