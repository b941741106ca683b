// Package command defines handlers for operations that change state.
package command

import "context"

// EmptyResult is a placeholder type for commands that do not return a result.
type (
	EmptyResult = struct{}
)

type (
	// Input represents the input type for a command.
	Input any

	// Result represents the result type for a command.
	Result any
)

// Command defines a handler for a state-changing operation.
type Command[I Input, R Result] interface {
	// Execute processes the command input and returns a result or error.
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc decorates a Command with a cross-cutting concern.
type WrapFunc[I Input, R Result] func(Command[I, R]) Command[I, R]

// Func adapts a plain function to Command.
type Func[I Input, R Result] func(ctx context.Context, input I) (R, error)

func (f Func[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f(ctx, input)
}

// Chain applies wraps to cmd. The first wrap becomes the outermost layer.
func Chain[I Input, R Result](cmd Command[I, R], wraps ...WrapFunc[I, R]) Command[I, R] {
	for i := len(wraps) - 1; i >= 0; i-- {
		cmd = wraps[i](cmd)
	}
	return cmd
}
