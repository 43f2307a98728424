package gate

import "context"

// Policy defines authorization rules for a resource type.
// For list and create, resource may be nil.
type Policy[S any] interface {
	Can(ctx context.Context, subject S, action Action, resource any) bool
}

// PolicyFunc adapts a plain function to Policy.
type PolicyFunc[S any] func(ctx context.Context, subject S, action Action, resource any) bool

func (f PolicyFunc[S]) Can(ctx context.Context, subject S, action Action, resource any) bool {
	return f(ctx, subject, action, resource)
}
