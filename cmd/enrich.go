/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/internal/iodb"
	"github.com/gnames/gnagro/internal/ioenrich"
	"github.com/gnames/gnagro/internal/iostore"
	"github.com/gnames/gnagro/pkg/agro"
	"github.com/gnames/gnagro/pkg/config"
	"github.com/gnames/gnagro/pkg/errcode"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getEnrichCmd returns the enrich command.
func getEnrichCmd() *cobra.Command {
	var (
		speciesIDs []int
		offline    bool
		seed       int64
		pretty     bool
	)

	enrichCmd := &cobra.Command{
		Use:   "enrich [ID...]",
		Short: "Derive agronomic profiles of species",
		Long: `Enrich species with agronomic profiles.

For every species id this command:
  1. Loads the species and its georeferenced occurrences
  2. Samples climate at every occurrence from the historical weather
     archive, estimating it from latitude when the archive fails
  3. Stores percentile-based climate requirements
  4. Stores default crop and soil profiles
  5. Infers a planting calendar from occurrence months
  6. Links companion plants already present in the database

Each step reports its own status. A failed step does not stop the others.
Results are printed as JSON, one per species.

Examples:
  gnagro enrich 42
  gnagro enrich 1 2 3 --pretty
  gnagro enrich -s 1,2,3 --offline --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrich(cmd, args, speciesIDs, offline, seed, pretty)
		},
	}

	enrichCmd.Flags().IntSliceVarP(
		&speciesIDs, "species-ids", "s", []int{},
		"species IDs to enrich (added to positional IDs)",
	)
	enrichCmd.Flags().BoolVarP(
		&offline, "offline", "o", false,
		"estimate climate from latitude, do not call the archive",
	)
	enrichCmd.Flags().Int64Var(
		&seed, "seed", 0,
		"seed of the climate estimator (0 means random)",
	)
	enrichCmd.Flags().BoolVarP(
		&pretty, "pretty", "p", false,
		"print indented JSON",
	)

	return enrichCmd
}

func runEnrich(
	cmd *cobra.Command,
	args []string,
	speciesIDs []int,
	offline bool,
	seed int64,
	pretty bool,
) error {
	ctx := context.Background()

	ids, err := collectSpeciesIDs(args, speciesIDs)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	enrichOpts := []config.Option{config.OptEnrichSpeciesIDs(ids)}
	if cmd.Flags().Changed("offline") {
		enrichOpts = append(enrichOpts, config.OptEnrichOffline(offline))
	}
	if cmd.Flags().Changed("seed") {
		enrichOpts = append(enrichOpts, config.OptEnrichSeed(seed))
	}
	cfg.Update(enrichOpts)

	if cfg.Database.MaxConnections < cfg.JobsNumber {
		gn.Warn(
			"<warn>max_connections (%d) is smaller than jobs_number (%d)</warn>",
			cfg.Database.MaxConnections, cfg.JobsNumber,
		)
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !hasTables {
		err = &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>gnagro create</em> first to initialize the schema.`,
			Err: errors.New("cannot enrich species of empty database"),
		}
		gn.PrintErrorMessage(err)
		return err
	}

	enr, err := ioenrich.New(cfg, iostore.New(op))
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg.Enrich.Offline {
		gn.Info("Offline mode, climate is estimated from latitude")
	}
	results := enr.EnrichAll(ctx, cfg.Enrich.SpeciesIDs)

	if err = writeResults(cmd.OutOrStdout(), results, pretty); err != nil {
		slog.Error("Cannot write results", "error", err)
		return err
	}

	sum := summarize(results)
	gn.Info(
		"Enriched <em>%d</em> species: %d with step errors, "+
			"%d warnings, %d failed",
		sum.total, sum.stepErrors, sum.warnings, sum.failed,
	)
	if sum.failed == sum.total {
		err = ioenrich.AllRunsFailedError(sum.total)
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

// collectSpeciesIDs merges positional ids with ids from the flag. The
// first occurrence of a duplicate id keeps its position.
func collectSpeciesIDs(args []string, flagIDs []int) ([]int, error) {
	res := make([]int, 0, len(args)+len(flagIDs))
	for _, v := range args {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, invalidSpeciesIDError(v)
		}
		res = append(res, id)
	}
	res = append(res, flagIDs...)

	var uniq []int
	for _, id := range res {
		if id <= 0 {
			return nil, invalidSpeciesIDError(strconv.Itoa(id))
		}
		if !slices.Contains(uniq, id) {
			uniq = append(uniq, id)
		}
	}

	if len(uniq) == 0 {
		return nil, &gn.Error{
			Code: errcode.EnrichNoSpeciesIDsError,
			Msg: `<err>No species to enrich.</err>
   Give species IDs as arguments or with <em>--species-ids</em>.`,
			Err: errors.New("no species ids"),
		}
	}
	return uniq, nil
}

func invalidSpeciesIDError(id string) error {
	return &gn.Error{
		Code: errcode.EnrichInvalidSpeciesIDError,
		Msg:  "<err>Species ID must be a positive integer, got</err> <em>%s</em>",
		Vars: []any{id},
		Err:  fmt.Errorf("invalid species id %q", id),
	}
}

// writeResults prints one JSON document per result.
func writeResults(w io.Writer, results []agro.Result, pretty bool) error {
	enc := gnfmt.GNjson{Pretty: pretty}
	for _, v := range results {
		bs, err := enc.Encode(v)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintln(w, string(bs)); err != nil {
			return err
		}
	}
	return nil
}

type summary struct {
	total, stepErrors, warnings, failed int
}

func summarize(results []agro.Result) summary {
	res := summary{total: len(results)}
	for _, v := range results {
		switch {
		case v.Failed():
			res.failed++
		case v.Warning != "":
			res.warnings++
		case v.StepErrors() > 0:
			res.stepErrors++
		}
	}
	return res
}
