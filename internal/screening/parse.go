package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"riskwatch/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrUnparseable means the external response could not be trusted
var ErrUnparseable = errors.New("unparseable screening response")

const responseSchemaURL = "schema://screen-result.json"

const responseSchema = `{
	"type": "object",
	"required": ["distress_score", "crisis_flag"],
	"properties": {
		"distress_score": {"type": "number", "minimum": 0, "maximum": 100},
		"crisis_flag": {"type": "boolean"}
	}
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if compileErr = json.Unmarshal([]byte(responseSchema), &def); compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(responseSchemaURL, def); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(responseSchemaURL)
	})
	return compiled, compileErr
}

// ParseResponse turns raw model text into a typed result. Markdown code
// fences are stripped, both keys must be present with the right types, and
// a distress score above 1 is read as a percentage.
func ParseResponse(raw string) (model.TextScreenResult, error) {
	body := stripFences(raw)
	if body == "" {
		return model.TextScreenResult{}, fmt.Errorf("%w: empty body", ErrUnparseable)
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return model.TextScreenResult{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	s, err := schema()
	if err != nil {
		return model.TextScreenResult{}, fmt.Errorf("compile screening schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return model.TextScreenResult{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	obj := doc.(map[string]any)
	score := obj["distress_score"].(float64)
	if score > 1 {
		score /= 100
	}

	return model.TextScreenResult{
		DistressScore: score,
		CrisisFlag:    obj["crisis_flag"].(bool),
		Source:        model.SourceModel,
	}, nil
}

// stripFences removes a surrounding ``` or ```json fence
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
