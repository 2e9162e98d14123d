package todo

import "io/fs"

type Database interface {
	Close() error
	// Migrate applies the up migrations found in the migrations directory of
	// the given filesystem.
	Migrate(fs.FS) error
}
