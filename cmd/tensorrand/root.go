package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/tensorrand/internal/config"
	"github.com/born-ml/tensorrand/internal/random"
	"github.com/born-ml/tensorrand/internal/rng"
)

// app carries what PersistentPreRunE resolved to the subcommands.
type app struct {
	out    io.Writer
	cfg    config.Config
	log    *zap.Logger
	filler *random.Filler
	gen    *rng.Generator
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out, log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "tensorrand",
		Short:         "Fill tensors from Gamma, Poisson, Uniform and Multinomial kernels",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}
	root.SetOut(out)
	config.AddFlags(root.PersistentFlags())

	root.AddCommand(
		newGammaCmd(a),
		newPoissonCmd(a),
		newUniformCmd(a),
		newMultinomialCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(a.cfg.LogLevel)
	a.log, err = logCfg.Build()
	if err != nil {
		return fmt.Errorf("couldn't build logger: %w", err)
	}

	a.filler = random.New(random.WithParallel(a.cfg.Parallel()), random.WithLogger(a.log))
	a.gen = rng.New(a.cfg.Seed)
	a.log.Debug("configured",
		zap.Uint64("seed", a.cfg.Seed),
		zap.Int("workers", a.cfg.Parallel().NumWorkers),
		zap.Int("minChunk", a.cfg.MinChunk),
	)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tensorrand %s\n", version)
			return err
		},
	}
}
