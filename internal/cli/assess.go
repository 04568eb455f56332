package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"riskwatch/internal/model"
	"riskwatch/internal/risk"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var assessFlags struct {
	name  string
	model string
	fv    model.FeatureVector
}

var (
	criticalColor = color.New(color.FgRed, color.Bold)
	highColor     = color.New(color.FgYellow, color.Bold)
	mediumColor   = color.New(color.FgYellow)
	lowColor      = color.New(color.FgGreen)
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Score one feature vector locally and print the explanation",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := assessFlags.fv.Validate(); err != nil {
			return err
		}
		forest, err := risk.LoadModel(assessFlags.model, false)
		if err != nil {
			return err
		}

		notifier := risk.NotifierFunc(func(_ context.Context, a model.Alert) error {
			fmt.Fprintln(cmd.ErrOrStderr(), criticalColor.Sprint(a.Message))
			return nil
		})
		engine := risk.NewEngineFromForest(forest, risk.DefaultHeuristicWeights(), notifier)
		a := engine.Assess(cmd.Context(), assessFlags.fv, risk.Subject{Name: assessFlags.name})

		return printAssessment(cmd.OutOrStdout(), a)
	},
}

func init() {
	f := assessCmd.Flags()
	f.StringVar(&assessFlags.name, "name", "student", "student name used in alerts")
	f.StringVar(&assessFlags.model, "model", "model.json", "model artifact (heuristic when absent)")
	f.Float64Var(&assessFlags.fv.AttendanceRate, "attendance", 100, "attendance rate percent")
	f.Float64Var(&assessFlags.fv.GPA, "gpa", 4, "grade point average")
	f.Float64Var(&assessFlags.fv.FinancialStressScore, "stress", 0, "financial stress 0-1")
	f.Float64Var(&assessFlags.fv.FamilySupportScore, "support", 1, "family support 0-1")
}

// tierLabel colors a tier for console output
func tierLabel(t model.RiskTier) string {
	switch t {
	case model.TierCritical:
		return criticalColor.Sprint(t)
	case model.TierHigh:
		return highColor.Sprint(t)
	case model.TierMedium:
		return mediumColor.Sprint(t)
	default:
		return lowColor.Sprint(t)
	}
}

// printAssessment renders the score and its attributions, largest first
func printAssessment(w io.Writer, a *model.RiskAssessment) error {
	fmt.Fprintf(w, "Dropout probability %.3f  tier %s  source %s\n", a.Probability, tierLabel(a.Tier), a.Source)

	names := make([]string, 0, len(a.Attributions))
	for name := range a.Attributions {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		vi, vj := a.Attributions[names[i]], a.Attributions[names[j]]
		if abs(vi) != abs(vj) {
			return abs(vi) > abs(vj)
		}
		return names[i] < names[j]
	})

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Feature", "Value", "Attribution"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	values := a.Features.Values()
	var data [][]string
	for _, name := range names {
		v := ""
		for i, fn := range model.FeatureNames {
			if fn == name {
				v = fmt.Sprintf("%.2f", values[i])
			}
		}
		data = append(data, []string{name, v, fmt.Sprintf("%+.4f", a.Attributions[name])})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
