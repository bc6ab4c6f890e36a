package artistdb

import "errors"

// ErrArtistNotFound is returned when a lookup misses the catalog.
var ErrArtistNotFound = errors.New("artist not found")
