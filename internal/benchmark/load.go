// internal/benchmark/load.go
package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSuiteNotFound indicates the benchmark file does not exist.
var ErrSuiteNotFound = errors.New("benchmark file not found")

// ErrSuiteMalformed indicates the benchmark file exists but is not a valid
// question set.
var ErrSuiteMalformed = errors.New("benchmark file is malformed")

// suiteSchema constrains the benchmark file shape before decoding: at least
// one question, each with an integer id, a non-empty prompt, and an answer
// letter in A-F.
const suiteSchema = `{
  "type": "object",
  "required": ["eval_data"],
  "properties": {
    "eval_data": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["question_id", "prompt", "answer"],
        "properties": {
          "question_id": {"type": "integer"},
          "prompt": {"type": "string", "minLength": 1},
          "answer": {"type": "string", "pattern": "^[A-F]$"}
        }
      }
    }
  }
}`

// LoadSuite reads and validates the benchmark question set at path. A
// missing file yields ErrSuiteNotFound; unparseable JSON or a schema
// violation yields ErrSuiteMalformed with the offending details.
func LoadSuite(path string) ([]Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSuiteNotFound, path)
		}
		return nil, fmt.Errorf("error reading benchmark file %s: %w", path, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(suiteSchema), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSuiteMalformed, path, err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrSuiteMalformed, path, strings.Join(details, "; "))
	}

	var suite Suite
	if err := json.Unmarshal(raw, &suite); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSuiteMalformed, path, err)
	}

	return suite.EvalData, nil
}
