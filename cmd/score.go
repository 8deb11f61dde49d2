package cmd

import (
	"log"
	"os"

	"github.com/cvtools/cvmatch/internal/extract"
	"github.com/cvtools/cvmatch/internal/logger"
	"github.com/cvtools/cvmatch/internal/quality"
	"github.com/cvtools/cvmatch/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scoreCmd = &cobra.Command{
	Use:   "score <cv-file>",
	Short: "Score the quality of a CV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("output", "o", "text", "output format: text or json")
}

func score(cmd *cobra.Command, cvPath string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	format, err := report.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	doc, err := extract.ReadFile(cvPath)
	if err != nil {
		logger.Fatal("reading the cv", zap.Error(err), zap.String("file", cvPath))
	}

	logger.Info("loaded the cv", zap.String("file", cvPath), zap.Int("pages", doc.Pages))

	weights := quality.DefaultWeights()
	if config.Quality != nil && config.Quality.Weights != nil {
		weights = *config.Quality.Weights
	}

	aggregator, err := quality.NewAggregator(weights, logger)
	if err != nil {
		logger.Fatal("building the quality aggregator", zap.Error(err))
	}

	rep, err := aggregator.Score(doc)
	if err != nil {
		logger.Fatal("scoring failed", zap.Error(err))
	}

	if err := report.WriteQuality(os.Stdout, rep, format); err != nil {
		logger.Fatal("writing the quality report", zap.Error(err))
	}
}
