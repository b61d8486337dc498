package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/tensorrand/internal/tensor"
)

func newGammaCmd(a *app) *cobra.Command {
	var (
		out   output
		alpha = param{name: "alpha", values: "1"}
		beta  = param{name: "beta"}
	)
	cmd := &cobra.Command{
		Use:   "gamma",
		Short: "Fill with the regularized incomplete gamma of a shared uniform draw",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dst, err := out.tensor()
			if err != nil {
				return err
			}
			defer dst.Release()
			alphaT, err := alpha.tensor(dst.DType())
			if err != nil {
				return err
			}
			betaT, err := beta.tensor(dst.DType())
			if err != nil {
				return err
			}
			if err := a.filler.Gamma(a.gen, alphaT, betaT, dst); err != nil {
				return err
			}
			return a.finish(dst, &out, cmd.Name())
		},
	}
	out.addFlags(cmd.Flags(), "10", tensor.Float32.String())
	alpha.addFlags(cmd.Flags(), "Shape parameter")
	beta.addFlags(cmd.Flags(), "Optional scale parameter")
	return cmd
}

func newPoissonCmd(a *app) *cobra.Command {
	var (
		out    output
		lambda = param{name: "lambda", values: "1"}
	)
	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "Fill with Poisson samples by CDF inversion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dst, err := out.tensor()
			if err != nil {
				return err
			}
			defer dst.Release()
			lambdaT, err := lambda.tensor(dst.DType())
			if err != nil {
				return err
			}
			if err := a.filler.Poisson(a.gen, lambdaT, dst); err != nil {
				return err
			}
			return a.finish(dst, &out, cmd.Name())
		},
	}
	out.addFlags(cmd.Flags(), "10", tensor.Float32.String())
	lambda.addFlags(cmd.Flags(), "Rate parameter")
	return cmd
}

func newUniformCmd(a *app) *cobra.Command {
	var (
		out  output
		low  = param{name: "min"}
		high = param{name: "max"}
	)
	cmd := &cobra.Command{
		Use:   "uniform",
		Short: "Fill with uniform samples from [min, max)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dst, err := out.tensor()
			if err != nil {
				return err
			}
			defer dst.Release()
			lowT, err := low.tensor(dst.DType())
			if err != nil {
				return err
			}
			highT, err := high.tensor(dst.DType())
			if err != nil {
				return err
			}
			if err := a.filler.Uniform(a.gen, lowT, highT, dst); err != nil {
				return err
			}
			return a.finish(dst, &out, cmd.Name())
		},
	}
	out.addFlags(cmd.Flags(), "10", tensor.Float32.String())
	low.addFlags(cmd.Flags(), "Lower bound, defaults to 0")
	high.addFlags(cmd.Flags(), "Upper bound, defaults to the largest value of --dtype")
	return cmd
}

func newMultinomialCmd(a *app) *cobra.Command {
	var (
		out        output
		logits     = param{name: "logits", values: "0,0", shape: "1,2"}
		logitsType string
		samples    int
		dimC       int
	)
	cmd := &cobra.Command{
		Use:   "multinomial",
		Short: "Draw class indices from logits with the Gumbel-max trick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inType, ok := tensor.ParseDataType(logitsType)
			if !ok {
				return fmt.Errorf("--logits-dtype %q: %w", logitsType, tensor.ErrUnsupportedType)
			}
			input, err := logits.tensor(inType)
			if err != nil {
				return err
			}
			dst, err := out.tensor()
			if err != nil {
				return err
			}
			defer dst.Release()
			if err := a.filler.Multinomial(a.gen, input, dst, samples, dimC); err != nil {
				return err
			}
			return a.finish(dst, &out, cmd.Name())
		},
	}
	out.addFlags(cmd.Flags(), "1,10", tensor.Int64.String())
	logits.addFlags(cmd.Flags(), "Per-class logits, rank 2")
	cmd.Flags().StringVar(&logitsType, "logits-dtype", tensor.Float32.String(), "Element type of the logits")
	cmd.Flags().IntVar(&samples, "samples", 10, "Samples drawn per batch row")
	cmd.Flags().IntVar(&dimC, "dim-c", 0, "Batch axis of logits and output")
	return cmd
}
