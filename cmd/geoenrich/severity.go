package main

import (
	"apartment-geo-enrich/internal/services"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var severityFlags struct {
	in, out        string
	caseColumn     string
	classification string
	column         string
	casePrefix     string
}

var severityCmd = &cobra.Command{
	Use:   "severity",
	Short: "Rate crime reports by classification",
	Long: `Keeps reports whose case number has the given prefix and adds a 1-10
severity column. Classifications without a rating are left empty and
listed in the log.`,
	Example: `  geoenrich severity --in data/crimes_v1.csv --out data/crimes_v2.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := severityFlags

		t, err := readTable(f.in, f.caseColumn, f.classification)
		if err != nil {
			return err
		}
		req := services.SeverityRequest{
			CaseColumn:           f.caseColumn,
			ClassificationColumn: f.classification,
			SeverityColumn:       f.column,
			CasePrefix:           f.casePrefix,
		}
		if _, err := services.ApplySeverity(cmd.Context(), req, t); err != nil {
			return eris.Wrap(err, "severity")
		}
		return t.WriteFile(f.out)
	},
}

func init() {
	fl := severityCmd.Flags()
	fl.StringVar(&severityFlags.in, "in", "", "input CSV")
	fl.StringVar(&severityFlags.out, "out", "", "output CSV")
	fl.StringVar(&severityFlags.caseColumn, "case-column", "Case Number", "case number column")
	fl.StringVar(&severityFlags.classification, "classification", "Report Classification", "classification column")
	fl.StringVar(&severityFlags.column, "column", "severity", "output severity column")
	fl.StringVar(&severityFlags.casePrefix, "case-prefix", "C", "keep only case numbers with this prefix; empty keeps all")
	for _, name := range []string{"in", "out"} {
		_ = severityCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(severityCmd)
}
