package sqlite

import "errors"

var ErrNotFound = errors.New("not found")

type scannable interface {
	Scan(...any) error
}
