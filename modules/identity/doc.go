// Package identity exposes the authentication pipeline over HTTP: JSON
// endpoints for credential register/login, the OAuth authorization-code
// round trip with single-use state verification, and cookie-based
// session transport. Sessions travel as signed tokens in an HttpOnly
// cookie and are re-hydrated from the user store on every request.
package identity
