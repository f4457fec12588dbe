package finance

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the document in its persisted
// JSON form, e.g. `$.transactions[?(@.category=="Еда")].amount` or
// `$.settings.exchangeRates.USD`.
//
// Numbers are float64, objects map[string]any and arrays []any.
func Query(doc *Document, path string) (any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("could not encode document: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("could not decode document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
