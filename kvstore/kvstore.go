// Package kvstore provides the durable key-value store that persists
// verification flags between admin sessions. It mirrors browser local
// storage semantics: string keys, string values, no expiry.
package kvstore

// Store is a durable string key-value store. Get reports a missing key via
// the boolean, not an error; errors mean the store itself is unavailable.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}
