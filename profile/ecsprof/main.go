// Profiling:
// go build ./profile/ecsprof
// ./ecsprof churn --config workload.toml
// go tool pprof -http=":8000" -nodefraction=0.001 ./ecsprof mem.pprof

package main

import (
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath string
	mode       string
	outputDir  string
	entities   int
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if err := newRootCmd(log).Execute(); err != nil {
		log.Error().Err(err).Msg("ecsprof failed")
		os.Exit(1)
	}
}

func newRootCmd(log zerolog.Logger) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "ecsprof",
		Short:         "Profile slotecs universes under synthetic workloads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&f.configPath, "config", "c", "", "TOML workload file")
	root.PersistentFlags().StringVar(&f.mode, "mode", "", "profile mode: mem, cpu or none")
	root.PersistentFlags().StringVar(&f.outputDir, "out", "", "directory for the pprof output")
	root.PersistentFlags().IntVar(&f.entities, "entities", 0, "entities per iteration")

	root.AddCommand(
		newWorkloadCmd("churn", "Admit and remove a full population every iteration", f, log, runChurn),
		newWorkloadCmd("access", "Read and write components of a fixed population", f, log, runAccess),
	)
	return root
}

func newWorkloadCmd(
	name, short string,
	f *flags,
	log zerolog.Logger,
	run func(Config, zerolog.Logger) error,
) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(f.configPath, log)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, &cfg)
			if err := cfg.validate(); err != nil {
				return err
			}
			level, _ := zerolog.ParseLevel(cfg.LogLevel)
			runLog := log.Level(level)

			runLog.Info().
				Str("workload", name).
				Str("mode", cfg.Mode).
				Int("rounds", cfg.Rounds).
				Int("iterations", cfg.Iterations).
				Int("entities", cfg.Entities).
				Msg("starting")

			if p := startProfile(cfg); p != nil {
				defer p.Stop()
			}
			return run(cfg, runLog)
		},
	}
}

func applyFlags(cmd *cobra.Command, f *flags, cfg *Config) {
	if cmd.Flags().Changed("mode") {
		cfg.Mode = f.mode
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = f.outputDir
	}
	if cmd.Flags().Changed("entities") {
		cfg.Entities = f.entities
	}
}

func startProfile(cfg Config) interface{ Stop() } {
	switch cfg.Mode {
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.OutputDir), profile.NoShutdownHook)
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.OutputDir), profile.NoShutdownHook)
	}
	return nil
}
