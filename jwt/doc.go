// Package jwt manages session-token issuance and verification with HS256 signing,
// plus construction of the browser session cookie carrying the token.
package jwt
