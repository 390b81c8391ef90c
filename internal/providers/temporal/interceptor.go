package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor returns a worker interceptor that gives every
// activity execution its own Sentry hub on the context, so the context-aware
// logger helpers report against the right scope.
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &sentryActivityInterceptor{}
}

type sentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *sentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInbound{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{Next: next},
	}
}

type sentryActivityInbound struct {
	interceptor.ActivityInboundInterceptorBase
}

func (s *sentryActivityInbound) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()
	ctx = sentry.SetHubOnContext(ctx, hub)
	return s.Next.ExecuteActivity(ctx, in)
}
