package main

import (
	"fmt"
	"strconv"

	"github.com/TuftsBCB/microenv/smr"
	"github.com/spf13/cobra"
)

func newScoreCmd(a *app) *cobra.Command {
	var format, dumpDir string
	cmd := &cobra.Command{
		Use:   "score DESIGN NATURAL RESID",
		Short: "Score one residue of a designed structure against a template",
		Long: `Score maps residue RESID of the DESIGN structure onto the NATURAL
template by global sequence alignment, counts hydrogen bonds, hydrophobic
contacts and salt bridges around both alpha-carbons, and prints the ratio of
the two totals (capped at 1).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			resid, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("Bad residue number '%s': %s", args[2], err)
			}
			eng, err := a.engine()
			if err != nil {
				return err
			}
			res, err := eng.Evaluate(smr.Request{
				DesignPath:    args[0],
				NaturalPath:   args[1],
				DesignResidue: resid,
			})
			if err != nil {
				return err
			}
			if dumpDir != "" {
				files, err := res.WriteEnvironments(dumpDir)
				if err != nil {
					return err
				}
				a.log.Info("wrote microenvironments", "files", files)
			}
			return encode(cmd.OutOrStdout(), format, res)
		},
	}
	cmd.Flags().Float64("radius", smr.DefaultConfig().Radius,
		"microenvironment radius in Angstroms")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json or yaml)")
	cmd.Flags().StringVar(&dumpDir, "dump", "",
		"write both microenvironments as PDB files into this directory")
	a.bind("radius", cmd.Flags().Lookup("radius"))
	return cmd
}
