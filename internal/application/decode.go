package application

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeData maps a decoded JSON document onto out. Scalars are converted
// weakly because AMEE is loose about numbers versus strings.
func decodeData(data any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	return decoder.Decode(data)
}
