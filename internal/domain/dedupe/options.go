// Package dedupe tracks which player names have already been seen.
package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithCapacityHint presizes the seen set.
func WithCapacityHint(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.capacityHint = n
		}
	}
}

// WithNormalizer sets how names are keyed. The default keys names exactly,
// so "Faker" and "faker" are different players.
func WithNormalizer(fn func(string) string) Option {
	return func(d *inMemoryDeduper) {
		if fn != nil {
			d.normalize = fn
		}
	}
}
