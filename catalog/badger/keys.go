package badger

import (
	"fmt"

	"github.com/poiesic/cinerec/core"
)

// Key prefixes for different data types
const (
	movieRecordPrefix = "movrec"
)

// makeMovieKey generates a key for a movie by ID.
func makeMovieKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", movieRecordPrefix, id))
}

// movieScanPrefix returns the prefix that covers every movie key.
func movieScanPrefix() []byte {
	return []byte(movieRecordPrefix + ":")
}
