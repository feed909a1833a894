package main

import (
	"fmt"
	"os"

	"github.com/TuftsBCB/microenv/smr"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newBatchCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Score many residues concurrently",
		Long: `Batch reads a YAML (or JSON) list of requests from FILE, e.g.

  - design_pdb: design.pdb
    natural_pdb: natural.pdb
    design_resid: 42
    radius: 10

and scores them concurrently. Every request is reported, failed or not, in
the order given. The command fails if any request failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			reqs, err := readRequests(args[0])
			if err != nil {
				return err
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}

			items := eng.Batch(cmd.Context(), reqs)
			if err := encode(cmd.OutOrStdout(), format, items); err != nil {
				return err
			}
			failed := 0
			for _, item := range items {
				if item.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d requests failed.", failed, len(items))
			}
			return nil
		},
	}
	cmd.Flags().Int("workers", smr.DefaultConfig().Workers,
		"number of requests evaluated at once")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json or yaml)")
	a.bind("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

// readRequests reads a list of requests. JSON is valid YAML, so both are
// accepted.
func readRequests(fp string) ([]smr.Request, error) {
	bs, err := os.ReadFile(fp)
	if err != nil {
		return nil, err
	}
	var reqs []smr.Request
	if err := yaml.Unmarshal(bs, &reqs); err != nil {
		return nil, fmt.Errorf("Could not read requests from '%s': %s", fp, err)
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("No requests found in '%s'.", fp)
	}
	return reqs, nil
}
