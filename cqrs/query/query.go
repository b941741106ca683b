// Package query defines handlers for read-only operations.
package query

import "context"

type (
	// Input represents the input type for a query.
	Input any

	// Result represents the result type for a query.
	Result any
)

// Query defines a handler for a read-only operation.
type Query[I Input, R Result] interface {
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a Query with a cross-cutting concern.
type WrapFunc[I Input, R Result] func(Query[I, R]) Query[I, R]

// Func adapts a plain function to Query.
type Func[I Input, R Result] func(ctx context.Context, input I) (R, error)

func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Chain applies wraps to q. The first wrap becomes the outermost layer.
func Chain[I Input, R Result](q Query[I, R], wraps ...WrapFunc[I, R]) Query[I, R] {
	for i := len(wraps) - 1; i >= 0; i-- {
		q = wraps[i](q)
	}
	return q
}
