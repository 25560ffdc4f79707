// Package oauthstate issues and verifies single-use OAuth state tokens
// used for CSRF protection on the authorization-code flow. States are
// stored with a TTL and consumed atomically: a state can be redeemed at
// most once, and only before it expires.
//
// Two implementations are provided: RedisStore for deployments where
// callbacks may land on any instance, and MemoryStore for tests and
// single-process development.
package oauthstate
