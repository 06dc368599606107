package credentials

import "errors"

// Storage keys. They match the keys the previous web client kept in
// browser local storage, which keeps durable stores portable between
// client versions.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

var ErrNotFound = errors.New("credential not found")

// Repo is the durable surface behind the Store: a flat key/value space
// that survives process restarts. Implementations return ErrNotFound for
// absent keys and must tolerate Remove on keys that do not exist.
//
// The Store serializes all access, so implementations only need to be
// safe for use from one Store at a time.
type Repo interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
