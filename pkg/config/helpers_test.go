package config

// testConfig returns a valid default configuration with each mutation
// applied in order.
//
//	cfg := testConfig(func(c *Config) { c.Output.Format = "json" })
func testConfig(mutate ...func(*Config)) *Config {
	cfg := Default()
	for _, m := range mutate {
		m(cfg)
	}
	return cfg
}
