// Package retry runs transient backend calls under an exponential
// backoff policy, retrying only the errors the caller's predicate
// accepts.
package retry
