// Package client talks to a Bookwise server: the HTTP API for accounts,
// recommendations and saved books, and the gRPC health service for
// reachability checks.
//
// The access token returned by Login is kept in memory only and attached
// to later requests as a bearer credential.
package client
