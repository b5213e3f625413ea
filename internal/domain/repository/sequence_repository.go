package repository

// SequenceRepository is the persistence port for order-number counters.
// Next atomically increments the counter for an order type and returns the
// new value; the row stays locked until the enclosing transaction ends, so
// sequential assignment never repeats or skips on deletes.
type SequenceRepository interface {
	Next(orderType string) (int64, error)
}
