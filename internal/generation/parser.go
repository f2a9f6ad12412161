package generation

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/store"
)

// OutputName is the build output installed as the generation.
const OutputName = "out"

// buildResult is one element of the array printed by nix build --json.
type buildResult struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// ParseBuildOutput extracts the store path of the "out" output from the
// output of nix build --json. Exactly one build result is accepted;
// multiple results are rejected rather than guessed at.
func ParseBuildOutput(data []byte) (store.Path, error) {
	if !utf8.Valid(data) {
		return store.Path{}, errors.MalformedOutput(fmt.Errorf("output is not valid UTF-8"))
	}

	var results []buildResult
	if err := json.Unmarshal(data, &results); err != nil {
		return store.Path{}, errors.MalformedOutput(err)
	}

	switch len(results) {
	case 0:
		return store.Path{}, errors.NoBuildResults()
	case 1:
	default:
		return store.Path{}, errors.AmbiguousOutput(len(results))
	}

	out := results[0].Outputs[OutputName]
	if out == "" {
		return store.Path{}, errors.MissingOutput(OutputName)
	}
	return store.New(out), nil
}
