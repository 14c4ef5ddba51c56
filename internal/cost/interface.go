package cost

// Tracker is an additive ledger of every external API call made for a job.
// Implementations are safe for concurrent use.
type Tracker interface {
	Record(e Entry)
	Report() Report
}
