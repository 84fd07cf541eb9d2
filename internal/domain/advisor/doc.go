/*
Package advisor produces advisory text for a building project from a local
language model served over the Ollama generate API.

Two operations are offered: AnalyzeProject returns short insight lines and
WeeklySchedule returns a week-by-week plan parsed from lines of the form

	Week 3: Foundation - excavation, footing, plinth beam

Neither operation fails. When the model is disabled, unreachable, answers
with an error status, returns nothing, or the circuit breaker is open, a
deterministic rule-based answer is returned with Offline set and a Raw text
that starts with OfflinePrefix.

Model responses are cached by a hash of model and prompt, and HTML in the
response is stripped before parsing.
*/
package advisor
