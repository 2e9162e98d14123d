package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var tokenParser = jwt.NewParser(jwt.WithPaddingAllowed())

// userIDFromToken reads the sub claim of a three-segment token without
// verifying its signature.
func userIDFromToken(token string) (int, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected 3 token segments, got %d", len(parts))
	}

	payload, err := tokenParser.DecodeSegment(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid payload encoding: %w", err)
	}

	var claims jwt.MapClaims
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(&claims); err != nil {
		return 0, fmt.Errorf("invalid payload: %w", err)
	}

	var id int
	if n, ok := claims["sub"].(json.Number); ok {
		id64, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid sub %q: %w", n, err)
		}
		id = int(id64)
	} else {
		sub, err := claims.GetSubject()
		if err != nil {
			return 0, err
		}
		if sub == "" {
			return 0, errors.New("missing sub claim")
		}
		id, err = strconv.Atoi(sub)
		if err != nil {
			return 0, fmt.Errorf("invalid sub %q: %w", sub, err)
		}
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid sub %d", id)
	}
	return id, nil
}
