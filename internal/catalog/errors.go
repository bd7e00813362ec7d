package catalog

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrUnavailable marks a failed catalog read. Handlers must distinguish it
// from an empty result so "no data" is never reported as "no match".
var ErrUnavailable = errors.New("catalog unavailable")

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
