// Package constants holds shared domain-level constants.
package constants

// Pub/Sub provider selection values, matched against config.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Collection names in the document store.
const (
	CollectionUsers    = "users"
	CollectionBooks    = "books"
	CollectionOrders   = "orders"
	CollectionPayments = "payments"
)
