// internal/benchmark/benchmark.go
// Package benchmark runs majority-vote accuracy benchmarks: for each
// question it samples multiple responses from a model, extracts the voted
// answer, and accumulates a percentage score.
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/mwiater/simplebench/internal/evaluate"
	"github.com/mwiater/simplebench/internal/logging"
)

var passMark = color.New(color.FgGreen).SprintFunc()
var failMark = color.New(color.FgRed).SprintFunc()

// Generator produces one model response for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Progress describes one completed question during a run.
type Progress struct {
	Index      int
	Total      int
	QuestionID int
	Passed     bool
	Score      float64
}

// Runner executes a benchmark suite against a single model. Questions are
// processed one at a time, and responses within a question are collected
// sequentially; any generation failure that exhausts retries aborts the
// whole run.
type Runner struct {
	gen          Generator
	model        string
	numResponses int

	// ResultsDir, when set, receives one JSONL line per scored question.
	ResultsDir string
	// OnProgress, when set, is called after each question is scored.
	OnProgress func(Progress)
}

// NewRunner constructs a Runner sampling numResponses responses per question.
func NewRunner(gen Generator, model string, numResponses int) *Runner {
	return &Runner{
		gen:          gen,
		model:        model,
		numResponses: numResponses,
	}
}

// Run scores every question and returns the final percentage (0-100). The
// raw float is returned for programmatic use; reporting rounds to one
// decimal place.
func (r *Runner) Run(ctx context.Context, questions []Question) (float64, error) {
	if len(questions) == 0 {
		return 0, errors.New("benchmark suite contains no questions")
	}
	if r.ResultsDir != "" {
		if err := os.MkdirAll(r.ResultsDir, 0o755); err != nil {
			return 0, fmt.Errorf("error creating results directory: %w", err)
		}
	}

	passed := 0
	for i, question := range questions {
		result, err := r.processQuestion(ctx, question)
		if err != nil {
			return 0, err
		}
		if result.MajorityCorrect {
			passed++
		}

		if r.ResultsDir != "" {
			record := QuestionResult{
				Timestamp:     time.Now().Format(time.RFC3339),
				Model:         r.model,
				QuestionID:    question.ID,
				CorrectAnswer: question.Answer,
				Answers:       result.Answers,
				Responses:     r.numResponses,
				Passed:        result.MajorityCorrect,
			}
			if err := appendResult(r.ResultsDir, r.model, record); err != nil {
				logging.LogEvent("error writing result for model %s: %v", r.model, err)
			}
		}

		if r.OnProgress != nil {
			r.OnProgress(Progress{
				Index:      i + 1,
				Total:      len(questions),
				QuestionID: question.ID,
				Passed:     result.MajorityCorrect,
				Score:      float64(passed) / float64(i+1) * 100,
			})
		}
	}

	score := float64(passed) / float64(len(questions)) * 100
	logging.LogEvent("Final Score: %.1f%%", score)
	return score, nil
}

// processQuestion collects all responses for one question and evaluates the
// majority vote. Extraction failing for every response is escalated to the
// caller and aborts the run.
func (r *Runner) processQuestion(ctx context.Context, question Question) (evaluate.VoteResult, error) {
	logging.LogEvent("Testing Question: %d", question.ID)

	responses := make([]string, 0, r.numResponses)
	for n := 0; n < r.numResponses; n++ {
		response, err := r.gen.Generate(ctx, question.Prompt)
		if err != nil {
			return evaluate.VoteResult{}, fmt.Errorf("question %d: %w", question.ID, err)
		}
		responses = append(responses, response)
		logging.Debugf("Response %d:\n%s", n+1, response)
	}

	result, err := evaluate.Evaluate(responses, question.Answer)
	if err != nil {
		return evaluate.VoteResult{}, fmt.Errorf("question %d: %w", question.ID, err)
	}

	verdict := failMark("FAIL")
	if result.MajorityCorrect {
		verdict = passMark("PASS")
	}
	logging.LogEvent("Majority Vote: %s", verdict)
	logging.LogEvent("Correct Answer: %s", question.Answer)
	logging.Debugf("Answers: %v", result.Answers)

	return result, nil
}
