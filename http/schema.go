package http

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

// Presence of each field is checked by the form layer, so nothing is required here.
const calculateRequestSchema = `{
	"type": "object",
	"properties": {
		"principal": {"type": ["string", "number"]},
		"annual_rate_percent": {"type": ["string", "number"]},
		"term_years": {"type": ["string", "number"]}
	},
	"additionalProperties": false
}`

var requestSchema = mustSchema(calculateRequestSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic(err)
	}
	return schema
}

// validateRequest returns the schema violations for a decoded request body.
func validateRequest(body interface{}) ([]string, error) {
	result, err := requestSchema.Validate(gojsonschema.NewGoLoader(numbersAsText(body)))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		details = append(details, e.String())
	}
	return details, nil
}

// numbersAsText copies v with every json.Number replaced by its text. The
// validator parses numbers into big.Rat, whose cost grows with the exponent.
func numbersAsText(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = numbersAsText(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = numbersAsText(e)
		}
		return out
	}
	return v
}
