// Package reactive holds component state. A Store maps variable names to
// values and reports every change to a Notifier. Structured values
// (map[string]any and []any) are handed out as Record and List views whose
// writes report to the same top-level variable, so a field changed three
// levels deep notifies the variable that owns it.
//
// Views are created when a structured value is reached, not copied up front.
// The underlying maps and slices stay plain Go values and can be read with
// Unwrap. Assigning the same map under two names produces two independent
// sets of views over shared data; each set notifies its own name.
package reactive
