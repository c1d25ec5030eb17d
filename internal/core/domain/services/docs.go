// Package services contains stateless domain services that do not belong to
// a single aggregate. Currently this is the delivery-status resolver, which
// adapts the courier-facing status vocabulary onto the canonical lifecycle.
package services
