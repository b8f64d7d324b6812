package utils

import "github.com/google/uuid"

// ParseID parses a path or query id. Malformed ids cannot match any row, so
// they are reported as notFound rather than as a parse failure.
func ParseID(id string, notFound error) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}
