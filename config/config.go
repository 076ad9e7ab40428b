// Package config implements the typed option registry described in spec §6
// "Configuration surface" and expanded in SPEC_FULL §4.12: the
// ParserBuilder boundary. Options are bound three ways, in increasing
// precedence: a YAML file, `.env` overrides, and CLI flags.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pa-m/geneva"
	"github.com/pa-m/geneva/population"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// RecombinationMode and SortingMode are parsed from the string forms named
// in spec §6 (`default`/`random`/`value`, `μ+λ`/`μ,λ`/`μ+1-retention`)
// before being handed to population.Config.

// Run bundles every recognized option from spec §6's configuration
// surface. Field names match the option names 1:1 except for the Go
// casing convention; yaml tags carry the spec's snake_case names.
type Run struct {
	PopulationSize int `yaml:"population_size"`
	NParents       int `yaml:"n_parents"`

	MaxIterations      int           `yaml:"max_iterations"`
	MaxStallIterations int           `yaml:"max_stall_iterations"`
	MaxDuration        time.Duration `yaml:"max_duration"`

	ReportIteration int `yaml:"report_iteration"`

	CheckpointInterval  int    `yaml:"checkpoint_interval"`
	CheckpointDirectory string `yaml:"checkpoint_directory"`
	CheckpointBasename  string `yaml:"checkpoint_basename"`

	RecombinationMode string `yaml:"recombination_mode"`
	SortingMode       string `yaml:"sorting_mode"`
	Maximize          bool   `yaml:"maximize"`

	// QualityThreshold is nil when the option is unset (spec §6
	// "optional<f64>").
	QualityThreshold *float64 `yaml:"quality_threshold"`

	GrowthRate        int `yaml:"growth_rate"`
	MaxPopulationSize int `yaml:"max_population_size"`

	// SigmaMin/SigmaMax are the linked-pair adaptor shape option named in
	// SPEC_FULL §4.12 ("sigma_min/sigma_max ... validates both together").
	SigmaMin float64 `yaml:"sigma_min"`
	SigmaMax float64 `yaml:"sigma_max"`
}

// Defaults returns the option set's documented defaults (spec §6: every
// scalar option "carries ... a default").
func Defaults() Run {
	return Run{
		PopulationSize:     100,
		NParents:           5,
		MaxIterations:      1000,
		MaxStallIterations: 0,
		ReportIteration:    10,
		CheckpointInterval: 0,
		CheckpointBasename: "geneva.checkpoint",
		RecombinationMode:  "default",
		SortingMode:        "μ+λ",
		GrowthRate:         0,
		MaxPopulationSize:  0,
		SigmaMin:           1e-7,
		SigmaMax:           5,
	}
}

// Validate applies the registry's per-option validators (spec §6: "a
// validator" per scalar option) plus the sigma_min/sigma_max linked-pair
// check (SPEC_FULL §4.12).
func (r *Run) Validate() error {
	if r.PopulationSize < 1 {
		return fmt.Errorf("config: population_size must be >= 1: %w", geneva.ErrInvalidArgument)
	}
	if r.NParents < 1 || r.NParents > r.PopulationSize {
		return fmt.Errorf("config: n_parents must be in [1, population_size]: %w", geneva.ErrInvalidArgument)
	}
	if r.MaxIterations < 0 || r.MaxStallIterations < 0 || r.GrowthRate < 0 || r.MaxPopulationSize < 0 {
		return fmt.Errorf("config: iteration/growth options must be >= 0: %w", geneva.ErrInvalidArgument)
	}
	switch r.RecombinationMode {
	case "default", "random", "value":
	default:
		return fmt.Errorf("config: recombination_mode %q not in {default, random, value}: %w", r.RecombinationMode, geneva.ErrInvalidArgument)
	}
	switch r.SortingMode {
	case "μ+λ", "μ,λ", "μ+1-retention":
	default:
		return fmt.Errorf("config: sorting_mode %q not in {μ+λ, μ,λ, μ+1-retention}: %w", r.SortingMode, geneva.ErrInvalidArgument)
	}
	if r.SigmaMin <= 0 || r.SigmaMax <= r.SigmaMin {
		return fmt.Errorf("config: sigma_min/sigma_max must satisfy 0 < sigma_min < sigma_max: %w", geneva.ErrInvalidArgument)
	}
	return nil
}

// PopulationRecombinationMode translates the parsed string option into
// population.RecombinationMode.
func (r *Run) PopulationRecombinationMode() population.RecombinationMode {
	if r.RecombinationMode == "value" {
		return population.RecombinationValue
	}
	return population.RecombinationRandom
}

// PopulationSortingMode translates the parsed string option into
// population.SortingMode.
func (r *Run) PopulationSortingMode() population.SortingMode {
	switch r.SortingMode {
	case "μ,λ":
		return population.SortComma
	case "μ+1-retention":
		return population.SortCommaElitist
	default:
		return population.SortPlus
	}
}

// LoadYAML overlays path's contents onto r (spec §6: the YAML file is "an
// alternative/overlay to flags"). A missing file is not an error; r is
// left at its current values.
func LoadYAML(path string, r *Run) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, geneva.ErrIoError)
	}
	if err := yaml.Unmarshal(data, r); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads `.env`-style overrides (SPEC_FULL §4.12, following
// ducminhle1904-crypto-dca-bot/cmd/backtest's loadEnvFile) before flags are
// parsed. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// checkpointDirectoryFromEnv applies the GENEVA_CHECKPOINT_DIRECTORY
// override, the one option SPEC_FULL §4.12 calls out by name as
// unsuitable for a checked-in YAML file.
func checkpointDirectoryFromEnv(r *Run) {
	if v := os.Getenv("GENEVA_CHECKPOINT_DIRECTORY"); v != "" {
		r.CheckpointDirectory = v
	}
}

// BindFlags registers every recognized option (spec §6) on cmd as a flag
// with its default from r, cobra/pflag style (SPEC_FULL §4.12, grounded on
// jhkimqd-chaos-utils/cmd/chaos-runner's flag registration). Flags take
// precedence over the YAML overlay: call LoadYAML/LoadDotEnv to populate r
// first, then BindFlags so the flag defaults reflect the overlay, then let
// cobra parse os.Args on top.
func BindFlags(cmd *cobra.Command, r *Run) {
	flags := cmd.Flags()
	flags.IntVar(&r.PopulationSize, "population-size", r.PopulationSize, "total population size (mu+lambda)")
	flags.IntVar(&r.NParents, "n-parents", r.NParents, "mu: number of parents")
	flags.IntVar(&r.MaxIterations, "max-iterations", r.MaxIterations, "halt after this many iterations (0 disables)")
	flags.IntVar(&r.MaxStallIterations, "max-stall-iterations", r.MaxStallIterations, "halt after this many stalled iterations (0 disables)")
	flags.DurationVar(&r.MaxDuration, "max-duration", r.MaxDuration, "halt after this much wall-clock time (0 disables)")
	flags.IntVar(&r.ReportIteration, "report-iteration", r.ReportIteration, "render a progress row every N iterations (0 disables)")
	flags.IntVar(&r.CheckpointInterval, "checkpoint-interval", r.CheckpointInterval, "checkpoint every N iterations, or -1 on every improvement (0 disables)")
	flags.StringVar(&r.CheckpointDirectory, "checkpoint-directory", r.CheckpointDirectory, "checkpoint output directory")
	flags.StringVar(&r.CheckpointBasename, "checkpoint-basename", r.CheckpointBasename, "checkpoint file basename")
	flags.StringVar(&r.RecombinationMode, "recombination-mode", r.RecombinationMode, "default|random|value")
	flags.StringVar(&r.SortingMode, "sorting-mode", r.SortingMode, "μ+λ|μ,λ|μ+1-retention")
	flags.BoolVar(&r.Maximize, "maximize", r.Maximize, "maximize instead of minimize")
	flags.IntVar(&r.GrowthRate, "growth-rate", r.GrowthRate, "individuals added per iteration past the first (0 disables growth)")
	flags.IntVar(&r.MaxPopulationSize, "max-population-size", r.MaxPopulationSize, "cap on growth: the population only grows while size+growth-rate stays <= this value (0 allows no growth)")
	flags.Float64Var(&r.SigmaMin, "sigma-min", r.SigmaMin, "adaptor sigma lower bound (linked with sigma-max)")
	flags.Float64Var(&r.SigmaMax, "sigma-max", r.SigmaMax, "adaptor sigma upper bound (linked with sigma-min)")

	var quality float64
	var qualitySet bool
	if r.QualityThreshold != nil {
		quality = *r.QualityThreshold
		qualitySet = true
	}
	flags.Float64Var(&quality, "quality-threshold", quality, "halt once best fitness reaches this value (unset disables)")
	cmd.PreRunE = chainPreRunE(cmd.PreRunE, func(*cobra.Command, []string) error {
		if flags.Changed("quality-threshold") || qualitySet {
			r.QualityThreshold = &quality
		}
		if !flags.Changed("checkpoint-directory") {
			checkpointDirectoryFromEnv(r)
		}
		return r.Validate()
	})
}

func chainPreRunE(first, second func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if first != nil {
			if err := first(cmd, args); err != nil {
				return err
			}
		}
		return second(cmd, args)
	}
}
