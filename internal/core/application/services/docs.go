// Package services contains application services: logic that orchestrates
// domain objects through ports but does not own a transaction boundary.
// Command handlers own the unit of work and pass it in.
package services
