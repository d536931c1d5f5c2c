// internal/benchmark/types.go
package benchmark

// Question defines a single multiple-choice benchmark question.
type Question struct {
	ID     int    `json:"question_id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Suite defines the benchmark question set loaded from JSON.
type Suite struct {
	EvalData []Question `json:"eval_data"`
}

// QuestionResult records one scored question for the JSONL results file.
type QuestionResult struct {
	Timestamp     string   `json:"timestamp"`
	Model         string   `json:"model"`
	QuestionID    int      `json:"questionId"`
	CorrectAnswer string   `json:"correctAnswer"`
	Answers       []string `json:"answers"`
	Responses     int      `json:"responses"`
	Passed        bool     `json:"passed"`
}

// Summary aggregates a completed run for reporting.
type Summary struct {
	Model        string
	Total        int
	Passed       int
	NumResponses int
	Score        float64
}
