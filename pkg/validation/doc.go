// Package validation holds the declarative rule table used by the
// registration form. A Schema is an ordered list of (field, rule) pairs over a
// fixed set of field names. Rules are independent of each other: Validate
// evaluates every field on every call and reports at most one message per
// field, so callers can surface every problem at once.
//
// Validation is a pure function of the supplied values. The same values always
// produce the same Result, and no state is retained between calls.
package validation
