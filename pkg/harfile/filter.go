package harfile

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// FilterJQ keeps the calls for which the jq expression yields a truthy value.
// Each call is presented to the expression as its JSON form (url, method,
// request, response). Per-call evaluation errors drop the call rather than
// aborting the batch; a malformed expression is an error.
func FilterJQ(calls []CapturedCall, expression string) ([]CapturedCall, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("compiling jq expression: %w", err)
	}

	out := make([]CapturedCall, 0, len(calls))
	for _, call := range calls {
		input, err := callAsAny(call)
		if err != nil {
			continue
		}

		iter := code.Run(input)
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if _, isErr := v.(error); isErr {
				continue
			}
			if truthy(v) {
				out = append(out, call)
				break
			}
		}
	}
	return out, nil
}

// callAsAny round-trips a call through JSON so gojq sees plain maps.
func callAsAny(call CapturedCall) (any, error) {
	b, err := json.Marshal(call)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// truthy follows jq semantics: everything except null and false.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}
