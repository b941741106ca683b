// Package wrapper provides middleware wrappers for command handlers.
//
// Wrappers compose through command.Chain. A typical stack, outermost first, is
// meta, tracing, logger, recovery and timeout, with the audit wrapper from
// auditlog placed right around the handler.
package wrapper
