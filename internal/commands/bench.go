// internal/commands/bench.go
package simplebench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/simplebench/internal/appconfig"
	"github.com/mwiater/simplebench/internal/benchmark"
	"github.com/mwiater/simplebench/internal/logging"
	"github.com/mwiater/simplebench/internal/ollama"
	"github.com/mwiater/simplebench/internal/tui"
)

var benchProgress bool

// benchCmd runs the majority-vote benchmark against the configured model.
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the majority-vote accuracy benchmark",
	Long: `Run the benchmark question set against the configured model. Each question
is sampled numResponses times; a question passes when a strict majority of
the extracted answers match the known answer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		// Fail fast on a missing or malformed question set before any
		// model traffic.
		questions, err := benchmark.LoadSuite(cfg.BenchmarkPath)
		if err != nil {
			return err
		}

		client := ollama.New(cfg)

		logging.LogEvent("Testing model: %s", cfg.Model)
		logging.Debugf("Configuration: %+v", *cfg)

		logging.LogEvent("Ensuring model %s is loaded on %s...", cfg.Model, cfg.HostURL)
		if err := client.EnsureModelReady(ctx); err != nil {
			return fmt.Errorf("error ensuring model %s is ready: %w", cfg.Model, err)
		}

		runner := benchmark.NewRunner(client, cfg.Model, cfg.NumResponses)
		runner.ResultsDir = cfg.ResultsDirPath()

		passed := 0
		countPassed := func(p benchmark.Progress) {
			if p.Passed {
				passed++
			}
		}

		var score float64
		if benchProgress {
			score, err = runWithProgress(ctx, runner, questions, cfg.Model, countPassed)
		} else {
			runner.OnProgress = countPassed
			score, err = runner.Run(ctx, questions)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logging.LogEvent("Benchmark interrupted by user")
				return err
			}
			return fmt.Errorf("benchmark failed: %w", err)
		}

		fmt.Println(benchmark.RenderSummary(benchmark.Summary{
			Model:        cfg.Model,
			Total:        len(questions),
			Passed:       passed,
			NumResponses: cfg.NumResponses,
			Score:        score,
		}))
		logging.LogEvent("Benchmark completed successfully")
		return nil
	},
}

// runWithProgress drives the run behind a live progress view. Quitting the
// view early cancels the run context, which aborts the run the same way an
// interrupt does.
func runWithProgress(ctx context.Context, runner *benchmark.Runner, questions []benchmark.Question, modelName string, countPassed func(benchmark.Progress)) (float64, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(tui.New(modelName, len(questions)))
	runner.OnProgress = func(p benchmark.Progress) {
		countPassed(p)
		program.Send(tui.QuestionMsg(p))
	}

	type runResult struct {
		score float64
		err   error
	}
	resultCh := make(chan runResult, 1)
	go func() {
		score, err := runner.Run(runCtx, questions)
		resultCh <- runResult{score: score, err: err}
		if err != nil {
			program.Send(tui.ErrMsg{Err: err})
			return
		}
		program.Send(tui.DoneMsg{Score: score})
	}()

	finalModel, uiErr := program.Run()
	cancel()
	result := <-resultCh
	if uiErr != nil {
		return 0, uiErr
	}
	if view, ok := finalModel.(tui.Model); ok && view.Interrupted() {
		return 0, context.Canceled
	}
	return result.score, result.err
}

func init() {
	benchCmd.Flags().String("benchmark", appconfig.DefaultBenchmarkPath, "path to the benchmark question set")
	benchCmd.Flags().Int("numResponses", appconfig.DefaultNumResponses, "number of responses sampled per question")
	benchCmd.Flags().Float64("temperature", appconfig.DefaultTemperature, "sampling temperature (0.0-1.0)")
	benchCmd.Flags().Float64("topP", appconfig.DefaultTopP, "nucleus-sampling mass (0.0-1.0)")
	benchCmd.Flags().Int("maxTokens", appconfig.DefaultMaxTokens, "maximum tokens to generate per response")
	benchCmd.Flags().Int("maxRetries", appconfig.DefaultMaxRetries, "maximum retry attempts per generation call")
	benchCmd.Flags().BoolVar(&benchProgress, "progress", false, "show a live progress view instead of plain logs")

	_ = viper.BindPFlag("benchmarkPath", benchCmd.Flags().Lookup("benchmark"))
	_ = viper.BindPFlag("numResponses", benchCmd.Flags().Lookup("numResponses"))
	_ = viper.BindPFlag("temperature", benchCmd.Flags().Lookup("temperature"))
	_ = viper.BindPFlag("topP", benchCmd.Flags().Lookup("topP"))
	_ = viper.BindPFlag("maxTokens", benchCmd.Flags().Lookup("maxTokens"))
	_ = viper.BindPFlag("maxRetries", benchCmd.Flags().Lookup("maxRetries"))

	rootCmd.AddCommand(benchCmd)
}
