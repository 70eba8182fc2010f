package models

// OrderCounter is a single-row table backing the monotonic comanda sequence.
// The row is incremented under a row lock so concurrent creations never
// share a number. Gaps from aborted creations are tolerated.
type OrderCounter struct {
	ID    uint  `gorm:"primaryKey"`
	Value int64 `gorm:"not null;default:0"`
}
