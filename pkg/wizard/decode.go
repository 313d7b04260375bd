package wizard

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeForm maps flattened form values onto the step's form struct using
// "form" tags. Fields are strings end to end; no weak typing, so a
// numeric-looking value stays the string the browser sent.
func decodeForm[F any](values map[string]string) (F, error) {
	var form F

	input := make(map[string]any, len(values))
	for k, v := range values {
		input[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &form,
		TagName: "form",
	})
	if err != nil {
		return form, fmt.Errorf("failed to build form decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return form, fmt.Errorf("failed to decode form body: %w", err)
	}
	return form, nil
}

// encodeForm flattens a form struct back into its "form"-tagged values. The
// default pipeline uses it to write the sanitized form onto the request body
// before the processors run.
func encodeForm[F any](form F) (map[string]string, error) {
	out := map[string]string{}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "form",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build form encoder: %w", err)
	}
	if err := dec.Decode(form); err != nil {
		return nil, fmt.Errorf("failed to encode form body: %w", err)
	}
	return out, nil
}
