package observability

import "context"

type NoOpObserver struct{}

func (NoOpObserver) OnEvent(context.Context, Event) {}
