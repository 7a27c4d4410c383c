// Package client implements the remote API surface of the authkeeper
// backend: typed operations over its REST/JSON endpoints, a single
// request-decoration step that attaches the current bearer token, and
// mapping of HTTP statuses onto the shared error taxonomy. It also
// bootstraps the local sqlite database used for durable credentials.
package client
