package session

import "github.com/Git-Commit-Therapy/sancommitto-client/authclient"

// ErrNoEndpoint reports that the service was asked to operate without an
// authentication endpoint. It is surfaced at Init time and whenever a
// call needs a transport that was never configured.
var ErrNoEndpoint = authclient.ErrNoEndpoint
