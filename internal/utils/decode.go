package utils

import (
	"bytes"
	"fmt"
	"strings"

	"Foodgram-Backend/domain"

	"github.com/goccy/go-json"
)

// DecodeStrict unmarshals body into dst and rejects fields dst does not
// declare. An empty body is treated as an empty object.
func DecodeStrict(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if field, ok := unknownField(err); ok {
			return domain.FieldError(field, domain.ErrUnknownFields)
		}
		return fmt.Errorf("%s: %w", domain.MessageFailedBodyRequest, err)
	}
	return nil
}

func unknownField(err error) (string, bool) {
	const marker = "unknown field "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	return strings.Trim(msg[i+len(marker):], `"`), true
}
