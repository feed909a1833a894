package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/TuftsBCB/microenv/align"
	"github.com/TuftsBCB/microenv/fasta"
	"github.com/TuftsBCB/microenv/pdb"
	"github.com/TuftsBCB/microenv/smr"
	"github.com/TuftsBCB/seq"
	"github.com/spf13/cobra"
)

func newAlignCmd(a *app) *cobra.Command {
	var (
		columns int
		noMap   bool
	)
	cmd := &cobra.Command{
		Use:   "align DESIGN NATURAL",
		Short: "Show the residue correspondence between two structures",
		Long: `Align prints the global alignment of the residue sequences of DESIGN
and NATURAL as aligned FASTA, followed by a table of corresponding residue
numbers.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := pdb.ReadPDB(args[0])
			if err != nil {
				return &smr.StructureLoadError{Path: args[0], Err: err}
			}
			natural, err := pdb.ReadPDB(args[1])
			if err != nil {
				return &smr.StructureLoadError{Path: args[1], Err: err}
			}
			if dups := design.Sequence().Duplicates(); len(dups) > 0 {
				a.log.Warn("design residue numbers occur more than once "+
					"and cannot be mapped", "numbers", dups)
			}

			aln, m, err := smr.Correspondence(design, natural, a.cfg.Scoring())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			w := fasta.NewAlignedWriter(out)
			w.Columns = columns
			err = w.WriteAll([]seq.Sequence{
				{Name: design.Name(), Residues: aln.A},
				{Name: natural.Name(), Residues: aln.B},
			})
			if err != nil {
				return err
			}
			if noMap {
				return nil
			}
			return writeMap(cmd, aln, m)
		},
	}
	cmd.Flags().IntVar(&columns, "columns", 60,
		"wrap aligned sequences at this many columns (0 for no wrapping)")
	cmd.Flags().BoolVar(&noMap, "no-map", false,
		"only print the alignment")
	return cmd
}

func writeMap(cmd *cobra.Command, aln align.Alignment, m *align.Map) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n# score %0.1f, identity %0.1f%%, %d mapped residues\n",
		aln.Score, 100*aln.Identity(), m.Len())
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "design\tnatural")
	for _, pair := range m.Pairs() {
		fmt.Fprintf(tw, "%d\t%d\n", pair.From, pair.To)
	}
	return tw.Flush()
}
