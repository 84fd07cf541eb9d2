/*
Package resilience provides a circuit breaker for calls to services the
planner does not control, such as the language model.

# States

- Closed: calls pass through and failures are counted
- Open: calls fail fast with ErrCircuitOpen until Timeout elapses
- Half-Open: up to MaxRequests trial calls decide whether to close again

	Closed --[ReadyToTrip]-> Open --[Timeout]-> Half-Open --[MaxRequests successes]-> Closed
	                                                |
	                                            [failure]
	                                                v
	                                              Open

# Usage

	breaker := resilience.New("advisor", resilience.Settings{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	text, err := resilience.Do(ctx, breaker, func(ctx context.Context) (string, error) {
		return client.Generate(ctx, prompt)
	})
*/
package resilience
