// Package meta loads YAML documents (plans, configuration) from any afs
// location, expanding ${env.NAME} expressions before decoding.
package meta
