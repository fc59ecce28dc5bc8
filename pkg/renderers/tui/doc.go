// Package tui renders a registration form as a sequence of terminal prompts.
// Rejected submissions print each field's message and ask again for the
// invalid fields only, prefilled with the previous answer.
package tui
