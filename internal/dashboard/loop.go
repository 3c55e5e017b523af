package dashboard

import (
	"context"
	"sync"
)

// Run drives the orchestrator without a terminal toolkit. It reads input
// events from events, runs returned Commands on their own goroutines and
// feeds their results back into Handle, all on the calling goroutine.
//
// Run returns nil after handling Quit or when events is closed, and
// ctx.Err() when ctx ends. Either way refresh is stopped and outstanding
// fetches are cancelled before it returns.
func (o *Orchestrator) Run(ctx context.Context, events <-chan Event) error {
	results := make(chan Event)
	done := make(chan struct{})
	var wg sync.WaitGroup

	dispatch := func(cmds []Command) {
		for _, cmd := range cmds {
			if cmd == nil {
				continue
			}
			wg.Add(1)
			go func(cmd Command) {
				defer wg.Done()
				ev := cmd()
				if ev == nil {
					return
				}
				select {
				case results <- ev:
				case <-done:
				}
			}(cmd)
		}
	}

	defer func() {
		o.shutdown()
		close(done)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			dispatch(o.Handle(ev))
			if _, quit := ev.(Quit); quit {
				return nil
			}

		case ev := <-results:
			dispatch(o.Handle(ev))
		}
	}
}
