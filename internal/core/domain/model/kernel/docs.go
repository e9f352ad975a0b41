// Package kernel contains the shared value objects of the order domain:
// UUID for entity identity and Money for currency-scoped decimal amounts.
//
// Both types follow the same rules: the zero value is invalid, construction
// goes through factory functions that validate their inputs, and instances
// are immutable after construction.
package kernel
