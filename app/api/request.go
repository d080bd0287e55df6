package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexInt decodes from either a JSON number or a numeric string, since
// browsers build these values from form controls and map keys. An empty
// string decodes as zero.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("integer field: %w", err)
		}
		num = json.Number(s)
	}
	if num == "" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("integer field: %w", err)
	}
	*n = FlexInt(v)
	return nil
}
