/*
Package resilience guards outbound backend calls with a circuit breaker.

When the outreach backend keeps failing, the breaker opens and further calls
fail fast with ErrCircuitOpen until a cool-down elapses. A limited number of
probe calls are then let through; enough consecutive successes close the
circuit again, any failure reopens it.

	Closed --[threshold failures]-> Open --[cool-down]-> HalfOpen --[probes succeed]-> Closed
	                                  ^                      |
	                                  +------[any failure]---+

Only errors classified by Settings.IsFailure count against the circuit, so a
rejected login (HTTP 401) does not trip it while an unreachable backend does.
*/
package resilience
