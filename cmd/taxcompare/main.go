// Command taxcompare prints the FY 2024-25 vs FY 2025-26 comparison for one or
// more annual incomes.
//
//	taxcompare 10,00,000 "₹15,00,000"
//	taxcompare -format yaml 1200000
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/windeesel365/slab-tax/display"
	"github.com/windeesel365/slab-tax/incomeinput"
	"github.com/windeesel365/slab-tax/taxcal"
)

var log = logrus.WithField("module", "taxcompare")

type regimeOutput struct {
	ID            string `json:"id" yaml:"id"`
	Label         string `json:"label" yaml:"label"`
	TaxableIncome string `json:"taxableIncome" yaml:"taxableIncome"`
	MarginalRate  string `json:"marginalRate" yaml:"marginalRate"`
	Tax           string `json:"tax" yaml:"tax"`
}

type comparisonOutput struct {
	TotalIncome string         `json:"totalIncome" yaml:"totalIncome"`
	Regimes     []regimeOutput `json:"regimes" yaml:"regimes"`
	Difference  string         `json:"difference" yaml:"difference"`
	Direction   string         `json:"direction" yaml:"direction"`
	Summary     string         `json:"summary" yaml:"summary"`
}

func toOutput(c taxcal.Comparison) comparisonOutput {
	out := comparisonOutput{
		TotalIncome: c.A.GrossIncome.StringFixed(2),
		Difference:  c.Result.Difference.StringFixed(2),
		Direction:   string(c.Result.Direction),
		Summary:     display.DirectionLabel(c),
	}
	for _, r := range []taxcal.TaxResult{c.A, c.B} {
		out.Regimes = append(out.Regimes, regimeOutput{
			ID:            r.ScheduleID,
			Label:         r.ScheduleLabel,
			TaxableIncome: r.TaxableIncome.StringFixed(2),
			MarginalRate:  display.Percent(r.MarginalRate),
			Tax:           r.Tax.StringFixed(2),
		})
	}
	return out
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("taxcompare", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "table", "output format: table, json or yaml")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: taxcompare [-format table|json|yaml] INCOME...")
		return 2
	}

	logrus.SetOutput(stderr)

	var comparisons []taxcal.Comparison
	for _, arg := range fs.Args() {
		income, err := incomeinput.Parse(arg)
		if err != nil {
			log.WithField("input", arg).Errorf("invalid income: %v", err)
			return 1
		}
		c, err := taxcal.CompareRegimes(income)
		if err != nil {
			log.WithField("input", arg).Error(err)
			return 1
		}
		comparisons = append(comparisons, c)
	}

	var err error
	switch *format {
	case "table":
		err = writeTable(stdout, comparisons)
	case "json":
		err = writeJSON(stdout, comparisons)
	case "yaml":
		err = writeYAML(stdout, comparisons)
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return 2
	}
	if err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

func writeTable(w io.Writer, comparisons []taxcal.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Income\tFY 2024-25\tFY 2025-26\tDifference\t")
	for _, c := range comparisons {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			display.Rupees(c.A.GrossIncome),
			display.Rupees(c.A.Tax),
			display.Rupees(c.B.Tax),
			display.Rupees(c.Result.Magnitude),
			display.DirectionLabel(c),
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, comparisons []taxcal.Comparison) error {
	out := make([]comparisonOutput, 0, len(comparisons))
	for _, c := range comparisons {
		out = append(out, toOutput(c))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeYAML(w io.Writer, comparisons []taxcal.Comparison) error {
	out := make([]comparisonOutput, 0, len(comparisons))
	for _, c := range comparisons {
		out = append(out, toOutput(c))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
