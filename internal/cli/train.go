package cli

import (
	"fmt"

	"riskwatch/internal/risk"

	"github.com/spf13/cobra"
)

var trainFlags struct {
	out      string
	samples  int
	trees    int
	maxDepth int
	seed     int64
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the risk forest on a synthetic cohort and write the artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		X, y := risk.SyntheticCohort(trainFlags.samples, trainFlags.seed)

		cfg := risk.DefaultTrainConfig()
		cfg.NumTrees = trainFlags.trees
		cfg.MaxDepth = trainFlags.maxDepth
		cfg.Seed = trainFlags.seed

		forest, err := risk.Train(X, y, cfg)
		if err != nil {
			return err
		}
		if err := forest.Save(trainFlags.out); err != nil {
			return err
		}

		correct := 0
		for i, x := range X {
			if (forest.Probability(x) >= 0.5) == y[i] {
				correct++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trees to %s (training accuracy %.3f)\n",
			len(forest.Trees), trainFlags.out, float64(correct)/float64(len(X)))
		return nil
	},
}

func init() {
	d := risk.DefaultTrainConfig()
	trainCmd.Flags().StringVar(&trainFlags.out, "out", "model.json", "artifact output path")
	trainCmd.Flags().IntVar(&trainFlags.samples, "samples", 1000, "synthetic cohort size")
	trainCmd.Flags().IntVar(&trainFlags.trees, "trees", d.NumTrees, "number of trees")
	trainCmd.Flags().IntVar(&trainFlags.maxDepth, "max-depth", d.MaxDepth, "maximum tree depth")
	trainCmd.Flags().Int64Var(&trainFlags.seed, "seed", d.Seed, "random seed")
}
