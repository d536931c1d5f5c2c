// internal/benchmark/benchmark_test.go
package benchmark

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/simplebench/internal/evaluate"
)

// scriptedGenerator replays canned responses in order.
type scriptedGenerator struct {
	responses []string
	calls     int
	err       error
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.err != nil {
		return "", g.err
	}
	if g.calls >= len(g.responses) {
		return "", fmt.Errorf("unexpected call %d", g.calls+1)
	}
	response := g.responses[g.calls]
	g.calls++
	return response, nil
}

// TestRunSingleQuestionMajorityCorrect covers the end-to-end pass: three
// responses extracting to B, B, A against correct answer B score 100.
func TestRunSingleQuestionMajorityCorrect(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"Final Answer: B",
		"Some reasoning.\nFinal Answer: B",
		"Final Answer: A",
	}}
	runner := NewRunner(gen, "test-model", 3)

	score, err := runner.Run(context.Background(), []Question{{ID: 1, Prompt: "q", Answer: "B"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if score != 100.0 {
		t.Fatalf("expected score 100.0, got %v", score)
	}
	if gen.calls != 3 {
		t.Fatalf("expected 3 generation calls, got %d", gen.calls)
	}
}

// TestRunHalfPassing covers the two-question split: one majority-correct,
// one majority-incorrect, scoring 50.0.
func TestRunHalfPassing(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"Final Answer: A", "Final Answer: A", "Final Answer: B",
		"Final Answer: C", "Final Answer: C", "Final Answer: D",
	}}
	runner := NewRunner(gen, "test-model", 3)

	questions := []Question{
		{ID: 1, Prompt: "first", Answer: "A"},
		{ID: 2, Prompt: "second", Answer: "D"},
	}
	score, err := runner.Run(context.Background(), questions)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if score != 50.0 {
		t.Fatalf("expected score 50.0, got %v", score)
	}
}

// TestRunTieFails verifies an exact-half tie scores the question as failed.
func TestRunTieFails(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{
		"Final Answer: A", "Final Answer: B", "Final Answer: A", "Final Answer: B",
	}}
	runner := NewRunner(gen, "test-model", 4)

	score, err := runner.Run(context.Background(), []Question{{ID: 1, Prompt: "q", Answer: "A"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if score != 0.0 {
		t.Fatalf("expected score 0.0 for a tie, got %v", score)
	}
}

// TestRunGenerationFailureAborts verifies a generation error propagates and
// aborts the whole run with no score.
func TestRunGenerationFailureAborts(t *testing.T) {
	genErr := errors.New("backend unavailable")
	gen := &scriptedGenerator{err: genErr}
	runner := NewRunner(gen, "test-model", 3)

	_, err := runner.Run(context.Background(), []Question{{ID: 7, Prompt: "q", Answer: "A"}})
	if !errors.Is(err, genErr) {
		t.Fatalf("expected generation error to propagate, got %v", err)
	}
	if !strings.Contains(err.Error(), "question 7") {
		t.Fatalf("expected error to name the question, got %v", err)
	}
}

// TestRunNoValidAnswersAborts verifies that a question where every response
// fails extraction aborts the run rather than scoring zero.
func TestRunNoValidAnswersAborts(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"nothing", "still nothing", "nope"}}
	runner := NewRunner(gen, "test-model", 3)

	_, err := runner.Run(context.Background(), []Question{{ID: 3, Prompt: "q", Answer: "A"}})
	if !errors.Is(err, evaluate.ErrNoValidAnswers) {
		t.Fatalf("expected ErrNoValidAnswers, got %v", err)
	}
}

// TestRunCanceledContext verifies interruption aborts without a score.
func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &scriptedGenerator{responses: []string{"Final Answer: A"}}
	runner := NewRunner(gen, "test-model", 1)

	_, err := runner.Run(ctx, []Question{{ID: 1, Prompt: "q", Answer: "A"}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// TestRunPersistsResults verifies the optional JSONL results file receives
// one line per question under a slugified model filename.
func TestRunPersistsResults(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Final Answer: B", "Final Answer: B", "Final Answer: A"}}
	runner := NewRunner(gen, "llama3.1:8b", 3)
	runner.ResultsDir = t.TempDir()

	if _, err := runner.Run(context.Background(), []Question{{ID: 1, Prompt: "q", Answer: "B"}}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(runner.ResultsDir, "llama3-1_8b.jsonl"))
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, `"questionId":1`) {
		t.Fatalf("expected question id in results, got: %s", content)
	}
	if !strings.Contains(content, `"passed":true`) {
		t.Fatalf("expected passed flag in results, got: %s", content)
	}
}

// TestRunProgressCallback verifies OnProgress fires once per question in
// collection order.
func TestRunProgressCallback(t *testing.T) {
	gen := &scriptedGenerator{responses: []string{"Final Answer: A", "Final Answer: B"}}
	runner := NewRunner(gen, "test-model", 1)

	var events []Progress
	runner.OnProgress = func(p Progress) { events = append(events, p) }

	questions := []Question{
		{ID: 10, Prompt: "first", Answer: "A"},
		{ID: 20, Prompt: "second", Answer: "C"},
	}
	if _, err := runner.Run(context.Background(), questions); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 progress events, got %d", len(events))
	}
	if events[0].Index != 1 || events[0].QuestionID != 10 || !events[0].Passed {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Index != 2 || events[1].QuestionID != 20 || events[1].Passed {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	if events[1].Score != 50.0 {
		t.Fatalf("expected running score 50.0, got %v", events[1].Score)
	}
}

func TestSlugify(t *testing.T) {
	if got := slugify("Llama3.1:8B Instruct"); got != "llama3-1_8b-instruct" {
		t.Fatalf("unexpected slug: %q", got)
	}
}
