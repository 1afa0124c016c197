// Package common contains shared constants and sentinel errors used across
// Billed components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound store requests.
const AuthorizationHeaderName = "Authorization"

// BillsCollection is the store collection holding bill records.
const BillsCollection = "bills"
