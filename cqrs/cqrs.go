// Package cqrs separates state-changing commands from read-only queries.
//
// Subpackages define the handler interfaces and composable wrappers used to add
// tracing, logging, recovery and audit recording around business operations.
package cqrs
