// internal/evaluate/evaluate.go
// Package evaluate scores free-text model responses against multiple-choice
// questions. Responses are reduced to a single letter via the "Final Answer:"
// marker and a question passes when a strict majority of the extracted
// letters match the known answer.
package evaluate

import (
	"errors"
	"regexp"
	"strings"

	"github.com/mwiater/simplebench/internal/logging"
)

// answerPattern matches the literal marker followed by exactly one choice
// letter. Valid letters are fixed at A-F; anything else is an extraction
// failure, not a new category.
var answerPattern = regexp.MustCompile(`(?i)Final Answer:\s*([A-F])`)

// ErrNoAnswerFound indicates a response contains no extractable answer. It
// is an expected per-response outcome, not a fault.
var ErrNoAnswerFound = errors.New("no answer found in model output")

// ErrNoValidAnswers indicates every response in a batch failed extraction.
var ErrNoValidAnswers = errors.New("failed to extract any valid answers from model outputs")

// VoteResult records the outcome of a majority vote together with the
// extracted answers that produced it, for audit logging.
type VoteResult struct {
	MajorityCorrect bool
	Answers         []string
}

// ExtractAnswer returns the uppercased answer letter from a single model
// output, or ErrNoAnswerFound when the marker is absent.
func ExtractAnswer(output string) (string, error) {
	match := answerPattern.FindStringSubmatch(strings.TrimSpace(output))
	if match == nil {
		return "", ErrNoAnswerFound
	}
	return strings.ToUpper(match[1]), nil
}

// ExtractAnswers runs extraction independently over each output, dropping
// failures. The returned slice may be shorter than the input; callers must
// not assume a 1:1 correspondence.
func ExtractAnswers(outputs []string) []string {
	answers := make([]string, 0, len(outputs))
	for _, output := range outputs {
		answer, err := ExtractAnswer(output)
		if err != nil {
			logging.LogEvent("failed to extract answer from model output: %q", output)
			continue
		}
		answers = append(answers, answer)
	}
	return answers
}

// MajorityVote reports whether correct holds a strict majority among
// answers. Exact-half ties fail; an empty slice fails.
func MajorityVote(answers []string, correct string) bool {
	if len(answers) == 0 {
		return false
	}
	count := 0
	for _, answer := range answers {
		if answer == correct {
			count++
		}
	}
	return count*2 > len(answers)
}

// Evaluate extracts answers from every output and applies the majority
// vote. It returns ErrNoValidAnswers when no output yields an answer; that
// case is surfaced to the caller rather than scored as a failure.
func Evaluate(outputs []string, correct string) (VoteResult, error) {
	answers := ExtractAnswers(outputs)
	if len(answers) == 0 {
		return VoteResult{}, ErrNoValidAnswers
	}
	return VoteResult{
		MajorityCorrect: MajorityVote(answers, correct),
		Answers:         answers,
	}, nil
}
