package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/evaluator"
	"github.com/resumeroast/resumeroast/internal/filtering"
	"github.com/resumeroast/resumeroast/internal/logger"
	"github.com/resumeroast/resumeroast/internal/postings"
	"github.com/resumeroast/resumeroast/internal/ranking"
	"github.com/resumeroast/resumeroast/internal/scoring"
)

const (
	PromptReportByCompany     = "Report by company"
	PromptDumpRanking         = "Dump ranked results to file"
	PromptPostingDetails      = "Show posting details"
	PromptAppendToExcludeFile = "Append all postings to exclude file"
	PromptBack                = "back"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score one resume against many job postings and rank the results",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("resume", "r", "", "resume file, free text or JSON")
	rankCmd.Flags().StringSlice("jobs", nil, "posting files, directories or globs (repeatable)")
	rankCmd.Flags().Int("top", 10, "how many postings to show in the ranking table")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with postings to exclude. Default is unset.")
	rankCmd.Flags().Bool("keep-duplicates", false, "do not collapse postings with the same title and company")
	rankCmd.Flags().Bool("batch", false, "print the ranking and exit without prompting")
	rankCmd.Flags().Bool("no-ai", false, "skip model evaluators, run the structured analysis only")

	rankCmd.MarkFlagRequired("resume")
	rankCmd.MarkFlagRequired("jobs")

	viper.BindPFlag("rank.top", rankCmd.Flags().Lookup("top"))
	viper.BindPFlag("rank.exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

// rank scores every posting against one resume and walks the user through
// the outcome.
func rank(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resumeroast", zap.String("version", resolveVersion()))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	resume := loadResumeFile(cmd.Flag("resume").Value.String(), logger)

	patterns, err := cmd.Flags().GetStringSlice("jobs")
	if err != nil {
		logger.Fatal("reading jobs flag", zap.Error(err))
	}

	paths, err := postings.Discover(patterns)
	if err != nil {
		logger.Fatal("discovering posting files",
			zap.Error(err),
			zap.String("hint", "pass files, directories or globs via --jobs"),
		)
	}

	set := postings.Load(paths, logger)
	logger.Info("loading postings", zap.Int("count", set.Len()))

	if set.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings loaded"))
		return
	}

	steps := filtering.DefaultSteps()
	if cmd.Flag("keep-duplicates").Value.String() == "true" {
		filtering.DisableByName(steps, "duplicates", "keep-duplicates flag is set")
	}
	filtering.LogStatuses(logger, steps)

	filtered, err := filtering.New(steps, logger).Run(ctx, filterConfig(config), set)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	set = filtered

	if set.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	var evaluators []*evaluator.Evaluator
	if cmd.Flag("no-ai").Value.String() == "false" {
		evaluators = buildEvaluators(ctx, config.AI, logger)
	}

	engine := scoring.NewEngine(evaluators, logger, engineConfig(config))
	ranker := ranking.New(engine, logger, rankerConfig(config))

	result := ranker.Rank(ctx, resume, set)

	logger.Info("ranking complete",
		zap.Int("scored", len(result.Entries)),
		zap.Int("failed", len(result.Failures)),
	)

	if len(result.Entries) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings scored successfully"))
		return
	}

	printRankingTable(result.Top(viper.GetInt("rank.top")))

	if cmd.Flag("batch").Value.String() == "true" {
		return
	}

	excludeFile := viper.GetString("rank.exclude-file")

	items := []string{PromptReportByCompany, PromptDumpRanking, PromptPostingDetails}
	if excludeFile != "" {
		items = append(items, PromptAppendToExcludeFile)
	}

	rankPrompt := promptui.Select{
		Label: "What next?",
		Items: append(items, PromptQuit),
	}

	for {
		_, action, err := rankPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current ranking",
			zap.Int("scored", len(result.Entries)),
			zap.Int("postings", set.Len()),
		)

		if err := handleRankAction(action, logger, set, result, excludeFile); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleRankAction(action string, logger *zap.Logger, set *postings.Postings, result *ranking.Ranking, excludeFile string) error {
	switch action {
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(set.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("postings count", set.Len()))
		return nil
	case PromptDumpRanking:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptPostingDetails:
		return showPostingDetails(result)
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, set, excludeFile)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// showPostingDetails lets the user pick ranked entries one by one and prints
// the full verdict for each until they go back.
func showPostingDetails(result *ranking.Ranking) error {
	for {
		items := make([]string, 0, len(result.Entries)+1)
		for _, entry := range result.Entries {
			items = append(items, fmt.Sprintf("%.1f %s / %s / %s",
				entry.Result.FinalScore,
				entry.Posting.Title(),
				entry.Posting.Company(),
				entry.Posting.Source,
			))
		}

		entryPrompt := promptui.Select{
			Label: "Choose a posting and press ENTER",
			Items: append(items, PromptBack),
		}

		idx, _, err := entryPrompt.Run()
		if err != nil {
			return err
		}

		if idx == len(result.Entries) {
			return nil
		}

		pretty, err := json.MarshalIndent(result.Entries[idx].Result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(pretty))
	}
}

func appendToExcludeFile(logger *zap.Logger, set *postings.Postings, excludeFile string) error {
	excluded, err := postings.LoadExcluded(excludeFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		excluded = &postings.ExcludedPostings{}
	}

	excluded.Append(set.ToExcluded())

	if err := excluded.ToFile(excludeFile); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	set.Exclude(postings.SourceField, excluded.Sources())
	return nil
}

func printRankingTable(entries []*ranking.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSCORE\tCATEGORY\tMETHOD\tTITLE\tCOMPANY\tSOURCE")
	for i, entry := range entries {
		fmt.Fprintf(w, "%d\t%.1f\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			entry.Result.FinalScore,
			entry.Result.MatchCategory,
			entry.Result.Path(),
			entry.Posting.Title(),
			entry.Posting.Company(),
			entry.Posting.Source,
		)
	}
	w.Flush()
}

func filterConfig(config *Config) *filtering.Config {
	cfg := &filtering.Config{
		ExcludeFile: viper.GetString("rank.exclude-file"),
	}
	if config.Rank != nil && config.Rank.Exclude != nil {
		cfg.Companies = config.Rank.Exclude.Companies
	}
	return cfg
}

func rankerConfig(config *Config) ranking.Config {
	cfg := ranking.Config{}
	if config.Rank != nil {
		cfg.Workers = config.Rank.Workers
		cfg.Delay = config.Rank.RequestDelay
	}
	return cfg
}
