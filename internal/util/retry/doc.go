// Package retry retries blocking calls against metadata services and
// user-data stores with exponential backoff.
//
// [Do] runs an operation until it succeeds, the attempt budget of the
// [Policy] is spent, the context is cancelled, or the operation returns an
// error marked with [Fatal].
package retry
