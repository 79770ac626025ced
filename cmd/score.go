package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumeroast/resumeroast/internal/evaluator"
	"github.com/resumeroast/resumeroast/internal/evaluator/gemini"
	"github.com/resumeroast/resumeroast/internal/evaluator/openai"
	"github.com/resumeroast/resumeroast/internal/logger"
	"github.com/resumeroast/resumeroast/internal/profile"
	"github.com/resumeroast/resumeroast/internal/scoring"
	"github.com/resumeroast/resumeroast/internal/secrets"
)

const (
	PromptShowJSON         = "Show full result JSON"
	PromptDumpToFile       = "Dump result to file"
	PromptShowTransparency = "Show transparency report"
	PromptQuit             = "Quit"

	backendGemini = "gemini"
	backendOpenAI = "openai"
)

var errExit = errors.New("exit requested")

var scorePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowJSON, PromptDumpToFile, PromptShowTransparency, PromptQuit},
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against one job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("resume", "r", "", "resume file, free text or JSON")
	scoreCmd.Flags().String("job", "", "job posting file, free text or JSON")
	scoreCmd.Flags().String("comments", "", "hiring manager comments folded into the score")
	scoreCmd.Flags().StringP("out", "o", "", "write the result JSON to this file instead of prompting")
	scoreCmd.Flags().Bool("no-ai", false, "skip model evaluators, run the structured analysis only")

	scoreCmd.MarkFlagRequired("resume")
	scoreCmd.MarkFlagRequired("job")
}

// score is the single-pair command: one resume, one posting, one verdict.
func score(cmd *cobra.Command) {
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
	job := loadJobFile(cmd.Flag("job").Value.String(), logger)

	var evaluators []*evaluator.Evaluator
	if cmd.Flag("no-ai").Value.String() == "false" {
		evaluators = buildEvaluators(ctx, config.AI, logger)
	}

	engine := scoring.NewEngine(evaluators, logger, engineConfig(config))

	result, err := engine.Score(ctx, resume, job, scoring.Options{
		Comments: cmd.Flag("comments").Value.String(),
	})
	if err != nil {
		var inputErr *scoring.InputError
		if errors.As(err, &inputErr) {
			logger.Fatal("rejecting the request",
				zap.String("field", inputErr.Field),
				zap.String("hint", inputErr.Reason),
			)
		}
		logger.Fatal("scoring failed", zap.Error(err))
	}

	printSummary(result)

	if out := cmd.Flag("out").Value.String(); out != "" {
		writeResultFile(out, result, logger)
		return
	}

	for {
		_, action, err := scorePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleScoreAction(action, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleScoreAction(action string, logger *zap.Logger, result *scoring.Result) error {
	switch action {
	case PromptShowJSON:
		pretty, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal result: %w", err)
		}
		fmt.Println(string(pretty))
		return nil
	case PromptDumpToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptShowTransparency:
		pretty, err := json.MarshalIndent(result.Transparency, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal transparency: %w", err)
		}
		fmt.Println(string(pretty))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printSummary(result *scoring.Result) {
	fmt.Printf("\nFinal score: %.1f/100 (%s)\n", result.FinalScore, result.MatchCategory)
	fmt.Printf("Confidence:  %s\n", result.ConfidenceLevel)
	fmt.Printf("Methodology: %s\n", result.Path())
	fmt.Printf("Breakdown:   skills %.0f, experience %.0f, education %.0f, domain %.0f\n",
		result.Breakdown.Skills,
		result.Breakdown.Experience,
		result.Breakdown.Education,
		result.Breakdown.Domain,
	)
	if result.Summary != "" {
		fmt.Printf("\n%s\n", result.Summary)
	}
	if len(result.MatchingSkills) > 0 {
		fmt.Printf("\nMatching skills: %s\n", strings.Join(result.MatchingSkills, ", "))
	}
	if len(result.MissingSkills) > 0 {
		fmt.Printf("Missing skills:  %s\n", strings.Join(result.MissingSkills, ", "))
	}
	fmt.Println()
}

func writeResultFile(path string, result *scoring.Result, logger *zap.Logger) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("marshal result", zap.Error(err))
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		logger.Fatal("writing result file", zap.Error(err))
	}
	logger.Info("result written", zap.String("filename", path))
}

func loadResumeFile(path string, logger *zap.Logger) *profile.ResumeProfile {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading resume file", zap.Error(err))
	}

	resume, err := profile.LoadResume(data)
	if err != nil {
		logger.Fatal("parsing resume",
			zap.Error(err),
			zap.String("hint", "resume must be free text with sections or a JSON profile"),
		)
	}
	return resume
}

func loadJobFile(path string, logger *zap.Logger) *profile.JobProfile {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading job file", zap.Error(err))
	}

	job, err := profile.LoadJob(data)
	if err != nil {
		logger.Fatal("parsing job posting",
			zap.Error(err),
			zap.String("hint", "posting must be free text or a JSON profile"),
		)
	}
	return job
}

// buildEvaluators constructs one evaluator per configured backend. A backend
// that cannot be built is skipped with a warning so scoring can still run on
// whatever is left, down to the structured baseline alone.
func buildEvaluators(ctx context.Context, cfg *AIConfig, log *zap.Logger) []*evaluator.Evaluator {
	if cfg == nil || !cfg.Enabled {
		log.Info("model evaluators disabled by config")
		return nil
	}

	evaluators := make([]*evaluator.Evaluator, 0, len(cfg.Backends))
	for _, backend := range cfg.Backends {
		name := strings.TrimSpace(strings.ToLower(backend))
		if name == "" {
			continue
		}

		eval, err := buildEvaluator(ctx, name, cfg, log)
		if err != nil {
			log.Warn("skipping backend",
				zap.String("backend", name),
				zap.Error(err),
			)
			continue
		}
		evaluators = append(evaluators, eval)
	}

	if len(evaluators) == 0 {
		log.Warn("no model backends available, falling back to structured analysis only",
			zap.String("hint", "set GEMINI_API_KEY or OPENAI_API_KEY, or configure ai.gemini / ai.openai"),
		)
	}

	return evaluators
}

func buildEvaluator(ctx context.Context, name string, cfg *AIConfig, log *zap.Logger) (*evaluator.Evaluator, error) {
	switch name {
	case backendGemini:
		gcfg := cfg.Gemini
		if gcfg == nil {
			gcfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: gcfg.APIKey,
			File:  gcfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		client, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:     apiKey,
			Model:      gcfg.Model,
			MaxRetries: gcfg.MaxRetries,
		}, logger.WithBackendFields(log, backendGemini, gcfg.Model))
		if err != nil {
			return nil, err
		}

		return evaluator.New(backendGemini, client, logger.WithBackendFields(log, backendGemini, client.Model()), gcfg.MaxLogLength), nil
	case backendOpenAI:
		ocfg := cfg.OpenAI
		if ocfg == nil {
			ocfg = &OpenAIConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: ocfg.APIKey,
			File:  ocfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		client, err := openai.NewClient(openai.Config{
			APIKey:     apiKey,
			Model:      ocfg.Model,
			BaseURL:    ocfg.BaseURL,
			MaxRetries: ocfg.MaxRetries,
		}, logger.WithBackendFields(log, backendOpenAI, ocfg.Model))
		if err != nil {
			return nil, err
		}

		return evaluator.New(backendOpenAI, client, logger.WithBackendFields(log, backendOpenAI, client.Model()), ocfg.MaxLogLength), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", name)
	}
}

func engineConfig(config *Config) scoring.Config {
	cfg := scoring.Config{}
	if config.AI != nil {
		cfg.EvaluatorTimeout = config.AI.Timeout
	}
	if config.Scoring != nil {
		cfg.CommentBonusCap = config.Scoring.CommentBonusCap
	}
	return cfg
}
