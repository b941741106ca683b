// Package middleware provides the fiber middlewares of the api process.
//
// Each middleware carries a priority; higher priorities run earlier:
//
//   - Recovery (1000)
//   - Tracing (900)
//   - Timeout (800)
//   - MetaInject (700)
//   - ErrorReport (600)
//   - Logger (500)
//   - ErrorHandler (400)
package middleware
