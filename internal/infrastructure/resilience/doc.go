/*
Package resilience provides a circuit breaker and a storage backend guarded by one.

The filesystem and settings persist on every mutation. When the backing store
starts failing (disk full, database closed) each write would otherwise block
for its full timeout and log again. The breaker opens after a run of
consecutive failures, fails calls immediately for a cooldown, then lets a
single probe through.

# Usage

	backend := resilience.NewBackend(raw, resilience.Settings{
		Threshold: 5,
		Cooldown:  30 * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.Warn("breaker state changed", zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

# Pattern

	Closed --[Threshold failures]-> Open --[Cooldown]-> Half-Open --[success]-> Closed
	                                  ^                     |
	                                  +------[failure]------+
*/
package resilience
