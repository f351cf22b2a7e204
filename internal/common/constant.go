// Package common contains shared constants and sentinel errors used across
// bidsync components.
package common

// AccessTokenHeaderName is the gRPC metadata key and the websocket handshake
// header that carry the access token.
const AccessTokenHeaderName = "access_token"

// SetupIntentSecretParam is the query parameter carrying a setup intent
// client secret on the guest sign-up redirect.
const SetupIntentSecretParam = "setup_intent_client_secret"

// DefaultPageSize is the number of options fetched per page.
const DefaultPageSize = 20
