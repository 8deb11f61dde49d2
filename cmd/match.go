package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/cvtools/cvmatch/internal/ai"
	"github.com/cvtools/cvmatch/internal/ai/gemini"
	"github.com/cvtools/cvmatch/internal/candidate"
	"github.com/cvtools/cvmatch/internal/extract"
	"github.com/cvtools/cvmatch/internal/filtering"
	"github.com/cvtools/cvmatch/internal/jobs"
	"github.com/cvtools/cvmatch/internal/logger"
	"github.com/cvtools/cvmatch/internal/matching"
	"github.com/cvtools/cvmatch/internal/report"
	"github.com/cvtools/cvmatch/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptSkillReport    = "Show skill demand report"
	PromptMatchesToFile  = "Dump matches to file"
	PromptPostingsToFile = "Dump postings to file"
	PromptExit           = "Exit"

	defaultTopK = 5
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptSkillReport, PromptMatchesToFile, PromptPostingsToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match <cv-file>",
	Short: "Rank job postings by how well they fit the given CV",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("jobs-file", "f", "", "csv file with job postings")
	matchCmd.Flags().IntP("top-k", "k", 0, fmt.Sprintf("number of matches to report (default %d)", defaultTopK))
	matchCmd.Flags().String("level", "", "override the experience level detected in the CV (junior, mid, senior)")
	matchCmd.Flags().StringP("output", "o", "text", "output format: text or json")
	matchCmd.Flags().BoolP("no-prompt", "y", false, "print the matches and exit without the interactive prompt")
	matchCmd.Flags().StringP("exclude-file", "e", "", "file with posting ids to exclude, one per line")

	viper.BindPFlag("jobs-file", matchCmd.Flags().Lookup("jobs-file"))
	viper.BindPFlag("top-k", matchCmd.Flags().Lookup("top-k"))
}

// match is the main matching command for the cli.
func match(cmd *cobra.Command, cvPath string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the cvmatch", zap.String("version", version))

	format, err := report.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	jobsFile := viper.GetString("jobs-file")
	if jobsFile == "" {
		jobsFile = config.JobsFile
	}
	if jobsFile == "" {
		logger.Fatal("jobs file is required",
			zap.String("hint", "pass --jobs-file or set the 'jobs-file' key in the configuration file"),
		)
	}

	topK := resolveTopK(cmd.Flags().Changed("top-k"), viper.GetInt("top-k"), config.TopK)

	doc, err := extract.ReadFile(cvPath)
	if err != nil {
		logger.Fatal("reading the cv", zap.Error(err), zap.String("file", cvPath))
	}

	logger.Info("loaded the cv", zap.String("file", cvPath), zap.Int("pages", doc.Pages))

	list, err := jobs.LoadCSV(jobsFile)
	if err != nil {
		logger.Fatal("loading job postings", zap.Error(err), zap.String("file", jobsFile))
	}

	logger.Info("loaded job postings", zap.Int("count", list.Len()))

	profile, err := candidate.New(doc.Text, list.SkillVocabulary())
	if err != nil {
		logger.Fatal("building the candidate profile", zap.Error(err))
	}

	if level := cmd.Flag("level").Value.String(); level != "" {
		profile = profile.WithExperience(jobs.ParseSeniority(level))
		logger.Info("experience level overridden", zap.String("level", profile.Experience.String()))
	} else {
		logger.Info("experience level detected", zap.String("level", profile.Experience.String()))
	}

	multipliers := matching.DefaultWeightTable()
	if config.Matching != nil && config.Matching.Multipliers != nil {
		multipliers = *config.Matching.Multipliers
	}

	results, err := matching.NewPipeline(multipliers, logger).Match(profile, list, topK)
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches produced"))
		return
	}

	if config.AI != nil && config.AI.Enabled {
		annotateWithAI(ctx, config, profile, results, logger)
	}

	steps, err := prepareFilters(cmd, config)
	if err != nil {
		logger.Fatal("preparing filters", zap.Error(err))
	}

	results, err = filtering.Run(ctx, logger, steps, results)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches left after filters"))
		return
	}

	if err := report.WriteMatches(os.Stdout, results, format); err != nil {
		logger.Fatal("writing the match report", zap.Error(err))
	}

	if cmd.Flag("no-prompt").Value.String() == "true" || format == report.FormatJSON {
		return
	}

	for {
		_, action, err := matchPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleMatchAction(action, list, profile, results, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// resolveTopK picks the shortlist size. An explicitly set flag wins verbatim,
// including zero, so the pipeline can reject it; only unset values fall back
// to the config and then the default.
func resolveTopK(flagChanged bool, flagValue, configValue int) int {
	if flagChanged {
		return flagValue
	}
	if flagValue != 0 {
		return flagValue
	}
	if configValue != 0 {
		return configValue
	}
	return defaultTopK
}

// prepareFilters builds the post-match filtering steps from flags and config.
// Steps whose inputs are absent are simply left out.
func prepareFilters(cmd *cobra.Command, config *Config) ([]filtering.Filter, error) {
	steps := make([]filtering.Filter, 0, 3)

	if path := cmd.Flag("exclude-file").Value.String(); path != "" {
		exclude, err := filtering.NewExcludeIDs(path)
		if err != nil {
			return nil, err
		}
		steps = append(steps, exclude)
	}

	if config.Matching != nil && config.Matching.MinScore > 0 {
		minScore, err := filtering.NewMinScore(config.Matching.MinScore)
		if err != nil {
			return nil, err
		}
		steps = append(steps, minScore)
	}

	if config.AI != nil && config.AI.Enabled && config.AI.MinimumFitScore > 0 {
		aiFit, err := filtering.NewAIFit(config.AI.MinimumFitScore)
		if err != nil {
			return nil, err
		}
		steps = append(steps, aiFit)
	}

	return steps, nil
}

func handleMatchAction(action string, list *jobs.Jobs, profile *candidate.Profile, results []*matching.MatchResult, logger *zap.Logger) error {
	switch action {
	case PromptSkillReport:
		return report.WriteSkillReport(os.Stdout, list.TopSkills(20), profile.Skills)
	case PromptMatchesToFile:
		filename, err := dumpMatches(results)
		if err != nil {
			return fmt.Errorf("dump matches to file: %w", err)
		}
		logger.Info("dumping matches to file", zap.String("filename", filename))
		return nil
	case PromptPostingsToFile:
		filename, err := list.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump postings to file: %w", err)
		}
		logger.Info("dumping postings to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func dumpMatches(results []*matching.MatchResult) (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// annotateWithAI attaches a provider verdict to every match. Advisor failures
// are recorded on the result instead of failing the run.
func annotateWithAI(ctx context.Context, config *Config, profile *candidate.Profile, results []*matching.MatchResult, log *zap.Logger) {
	advisor, err := buildAdvisor(ctx, config, log)
	if err != nil {
		log.Warn("ai advisor disabled", zap.Error(err))
		return
	}

	for _, result := range results {
		advice, err := advisor.Advise(ctx, profile.RawText, result.Job, result.SkillOverlap)
		if err != nil {
			log.Warn("ai advice failed", zap.String("job_id", result.Job.ID), zap.Error(err))
			result.AI = &matching.AIAssessment{Error: err.Error()}
			continue
		}

		result.AI = &matching.AIAssessment{
			Summary: advice.Summary,
			Score:   advice.Score,
		}
	}
}

func buildAdvisor(ctx context.Context, config *Config, log *zap.Logger) (ai.Advisor, error) {
	if config.AI.Provider != "" && config.AI.Provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}

	geminiCfg := config.AI.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  geminiCfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, gemini.GeneratorConfig{
		APIKey:       apiKey,
		Model:        geminiCfg.Model,
		MaxRetries:   geminiCfg.MaxRetries,
		MaxLogLength: geminiCfg.MaxLogLength,
	}, log)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, log), nil
}
