package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sievekit/sieve/pkg/config"
	"github.com/sievekit/sieve/pkg/report"
	"github.com/sievekit/sieve/pkg/rule"
)

const cmdExamples = `  # Filter the default analysis result:
  sieve

  # Filter a specific result file:
  sieve results/All-Targets.json

  # Use a different rule file:
  sieve --rules my_rules.txt results/All-Targets.json

  # Read from stdin, write to stdout:
  lockbud-run | sieve - --output -

  # Re-filter whenever the result file changes:
  sieve results/All-Targets.json --watch`

type RunArgs struct {
	*RootArgs

	Path        string
	ConfigPath  string
	RulesPath   string
	OutputPath  string
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the sieve configuration file")
	cmd.Flags().StringVar(&ra.RulesPath, "rules", "", "Path to the rule file, one exclusion per line")
	cmd.Flags().StringVarP(&ra.OutputPath, "output", "o", "", `Path for the filtered result, "-" for stdout`)
	cmd.Flags().BoolVarP(&ra.Watch, "watch", "w", false, "Re-run filtering when the input changes")
	cmd.Flags().BoolVar(&ra.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ra.ShowConfig, "show-config", false, "Print the active configuration and exit")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	err = cmd.MarkFlagFilename("rules", "txt")
	if err != nil {
		panic(fmt.Errorf("mark rules flag: %w", err))
	}
}

func NewRunCmd(ra *RunArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [input]",
		Short:   "Default command, filters an analysis result file",
		Example: cmdExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				ra.Path = args[0]
			}

			return run(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	cfg, err := loadConfig(cmd, ra)
	if err != nil || ra.WriteConfig || ra.ShowConfig {
		return err
	}

	set, err := loadRules(ra, cfg)
	if err != nil {
		return err
	}

	// Surface every compiled pattern before filtering, in set order.
	for _, m := range set.Matchers() {
		slog.Info("loaded filter", slog.String("pattern", m.Pattern()))
	}

	inputPath := cfg.Input.Path
	if ra.Path != "" {
		inputPath = ra.Path
	}

	outputPath := cfg.Output.Path
	if ra.OutputPath != "" {
		outputPath = ra.OutputPath
	}

	filterOnce := func() error {
		return filterDocument(cmd, set, inputPath, outputPath)
	}

	if err := filterOnce(); err != nil {
		return err
	}

	if ra.Watch {
		if inputPath == "-" {
			return fmt.Errorf("cannot watch stdin")
		}

		return watchInput(cmd.Context(), inputPath, filterOnce)
	}

	return nil
}

// loadConfig resolves and loads the configuration file, handling the
// --write-config and --show-config maintenance flags.
func loadConfig(cmd *cobra.Command, ra *RunArgs) (*config.Config, error) {
	configPath := ra.ConfigPath
	if configPath == "" {
		configPath = config.GetPath()
	}

	err := config.WriteDefaultConfig(configPath, false)
	if err != nil {
		slog.Error("write default config", slog.Any("err", err))
	}
	if ra.WriteConfig {
		// Exit early after writing the default config.
		// Also, if there was an error, it should be fatal.
		return nil, err
	}

	cfg := config.NewConfig()

	cl, err := config.NewConfigLoaderFromFile(configPath)
	if err != nil {
		slog.Warn("could not read config, using defaults", slog.Any("err", err))
	} else {
		err = cl.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
		}

		cfg, err = cl.Load()
		if err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", configPath, err)
		}
	}

	if ra.ShowConfig {
		slog.Info("active configuration", slog.String("path", configPath))

		yamlBytes, err := cfg.MarshalYAML()
		if err != nil {
			return nil, fmt.Errorf("marshal config yaml: %w", err)
		}

		mustN(fmt.Fprint(cmd.OutOrStdout(), string(yamlBytes)))

		return cfg, nil
	}

	return cfg, nil
}

// loadRules reads the rule file, appends inline extras from the config, and
// compiles the matcher set. An unreadable rule file aborts the run.
func loadRules(ra *RunArgs, cfg *config.Config) (*rule.Set, error) {
	rulesPath := cfg.Rules.Path
	if ra.RulesPath != "" {
		rulesPath = ra.RulesPath
	}

	rules, err := rule.ParseFile(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	for _, raw := range cfg.Rules.Extra {
		rules = append(rules, rule.Rule{Raw: raw})
	}

	slog.Debug("parsed rules",
		slog.String("path", rulesPath),
		slog.Int("file", len(rules)-len(cfg.Rules.Extra)),
		slog.Int("extra", len(cfg.Rules.Extra)),
	)

	return rule.NewSet(rules), nil
}

// filterDocument runs one decode, filter, encode pass.
func filterDocument(cmd *cobra.Command, set *rule.Set, inputPath, outputPath string) error {
	doc, err := decodeInput(cmd.InOrStdin(), inputPath)
	if err != nil {
		return err
	}

	stats := report.Filter(doc, set)
	slog.Info("filtered analysis result",
		slog.String("input", inputPath),
		slog.Int("packages", stats.Packages),
		slog.Int("kept", stats.Kept),
		slog.Int("removed", stats.Removed),
	)

	if outputPath == "-" {
		return doc.Encode(cmd.OutOrStdout())
	}

	return doc.EncodeFile(outputPath)
}

func decodeInput(stdin io.Reader, path string) (*report.Document, error) {
	if path == "-" {
		return report.Decode(stdin)
	}

	return report.DecodeFile(path)
}
