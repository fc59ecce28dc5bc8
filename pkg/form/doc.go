// Package form owns the lifecycle of a single registration form: the current
// field values, the errors of the last rejected submission and the hand-off of
// accepted submissions to a Submitter.
//
// A Form moves through Editing, Validating and then either EditingWithErrors
// or Submitted. Submitted immediately returns to Editing with every value
// cleared, so a Form can be reused indefinitely.
//
// A Form is owned by one goroutine (one HTTP request or one terminal session)
// and is not safe for concurrent use.
package form
