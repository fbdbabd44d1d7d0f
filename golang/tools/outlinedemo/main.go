// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main runs the outlining example from the command line.
//
// Flags can also be set with environment variables prefixed by OUTLINE_,
// for example OUTLINE_CALLS=100 or OUTLINE_MIN_ELEMENTS=2.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/outliner/examples/outlining"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "OUTLINE"

const (
	flagCalls       = "calls"
	flagDOF         = "dof"
	flagDims        = "dims"
	flagMinElements = "min-elements"
	flagMaxElements = "max-elements"
	flagSeed        = "seed"
	flagWorkers     = "workers"
	flagDebug       = "debug"
)

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil && err == nil {
			err = errors.Wrapf(bindErr, "cannot bind flag %s", f.Name)
		}
	})
	return err
}

func configFrom(v *viper.Viper) outlining.Config {
	return outlining.Config{
		NumCalls:    v.GetInt(flagCalls),
		NumDOF:      v.GetInt(flagDOF),
		NumDims:     v.GetInt(flagDims),
		MinElements: v.GetInt(flagMinElements),
		MaxElements: v.GetInt(flagMaxElements),
		Seed:        v.GetUint64(flagSeed),
		Workers:     v.GetInt(flagWorkers),
	}
}

func newCommand(v *viper.Viper) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           "outlinedemo",
		Short:         "Call an outlined function on random array containers and check the call sites",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v.GetBool(flagDebug))
			if err != nil {
				return err
			}
			defer logger.Sync()
			cfg := configFrom(v)
			logger.Info("running outlining example",
				zap.Int("calls", cfg.NumCalls),
				zap.Int("dof", cfg.NumDOF),
				zap.Int("dims", cfg.NumDims),
				zap.Uint64("seed", cfg.Seed),
			)
			report, err := outlining.Run(cmd.Context(), cfg, logger)
			if err != nil {
				logger.Error("outlining example failed", zap.Error(err))
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "calls: %d\n", report.NumCalls)
			fmt.Fprintf(out, "call sites: %d\n", report.NumCallSites)
			fmt.Fprintf(out, "distinct functions: %d\n", report.NumFunctions)
			fmt.Fprintf(out, "nodes: %d\n", report.NumNodes)
			fmt.Fprintf(out, "max relative error: %g\n", report.MaxRelError)
			return nil
		},
	}
	def := outlining.DefaultConfig()
	flags := cmd.Flags()
	flags.Int(flagCalls, def.NumCalls, "number of calls to the outlined function")
	flags.Int(flagDOF, def.NumDOF, "number of degrees of freedom per element")
	flags.Int(flagDims, def.NumDims, "number of velocity components")
	flags.Int(flagMinElements, def.MinElements, "minimum number of elements per state")
	flags.Int(flagMaxElements, def.MaxElements, "maximum number of elements per state")
	flags.Uint64(flagSeed, def.Seed, "seed of the random number generator")
	flags.Int(flagWorkers, def.Workers, "number of results evaluated concurrently (0 for GOMAXPROCS)")
	flags.Bool(flagDebug, false, "enable debug logging")
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}
	return cmd, nil
}

func main() {
	cmd, err := newCommand(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}
