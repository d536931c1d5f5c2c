// internal/benchmark/load_test.go
package benchmark

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSuite(t *testing.T) {
	path := writeSuite(t, `{
        "eval_data": [
            {"question_id": 1, "prompt": "What is 2+2?\nA) 3 B) 4", "answer": "B"},
            {"question_id": 2, "prompt": "Pick C.", "answer": "C"}
        ]
    }`)

	questions, err := LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != 1 || questions[0].Answer != "B" {
		t.Fatalf("unexpected first question: %+v", questions[0])
	}
}

func TestLoadSuiteMissingFile(t *testing.T) {
	_, err := LoadSuite(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrSuiteNotFound) {
		t.Fatalf("expected ErrSuiteNotFound, got %v", err)
	}
}

func TestLoadSuiteMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"eval_data": [`},
		{"missing eval_data", `{"questions": []}`},
		{"empty eval_data", `{"eval_data": []}`},
		{"answer outside choices", `{"eval_data": [{"question_id": 1, "prompt": "x", "answer": "G"}]}`},
		{"missing prompt", `{"eval_data": [{"question_id": 1, "answer": "A"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSuite(t, tc.content)
			_, err := LoadSuite(path)
			if !errors.Is(err, ErrSuiteMalformed) {
				t.Fatalf("expected ErrSuiteMalformed, got %v", err)
			}
			if errors.Is(err, ErrSuiteNotFound) {
				t.Fatalf("malformed file must not report as missing: %v", err)
			}
		})
	}
}
