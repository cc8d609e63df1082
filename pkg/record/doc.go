// Package record defines the typed health record items (weights, blood
// pressures, lab results, goals, contact details), the composite values
// they are built from, and the thing envelope that wraps a typed payload
// with its instance identity.
//
// Every type parses from and writes to the service's XML fragments.
// Optional fields are nil pointers and leave no trace in the output;
// mandatory fields are enforced when a write is attempted, so a record
// with gaps can exist in memory but never reaches the wire. Value
// domains (non-blank strings, non-negative measurements) are enforced
// eagerly by setters and constructors.
package record
