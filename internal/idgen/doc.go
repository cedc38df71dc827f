// Package idgen generates allocation identifiers. It can be stubbed in
// tests; callers treat identifiers as opaque strings.
package idgen
