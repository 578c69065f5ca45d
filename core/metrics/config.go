package metrics

// Config defines settings for the metrics sink.
type Config struct {
	// Enabled switches the prometheus sink on; the Nop sink is used
	// otherwise.
	Enabled bool `json:"enabled"`
	// Addr is the listen address for the /metrics endpoint when the
	// engine keeps running after a plan. Empty disables exposition.
	Addr string `json:"addr"`
}
