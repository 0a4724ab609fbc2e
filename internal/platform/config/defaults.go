package config

// defaults is the lowest configuration layer. The service starts with
// nothing else: an on-disk sqlite store, JSON logs and telemetry off.
func defaults() map[string]any {
	return map[string]any{
		"app": map[string]any{
			"name":        "quote-service",
			"version":     "dev",
			"environment": "local",
		},
		"server": map[string]any{
			"host":             "0.0.0.0",
			"port":             3000,
			"read_timeout":     "30s",
			"write_timeout":    "30s",
			"idle_timeout":     "120s",
			"request_timeout":  "10s",
			"shutdown_timeout": "10s",
			"max_request_size": 1 << 20,
		},
		"log": map[string]any{
			"level":  "info",
			"format": "json",
			"file": map[string]any{
				"enabled":     false,
				"path":        "./logs/quote-service.log",
				"max_size":    100,
				"max_backups": 3,
				"max_age":     28,
				"compress":    true,
			},
		},
		"telemetry": map[string]any{
			"enabled":       false,
			"endpoint":      "",
			"service_name":  "quote-service",
			"sampling_rate": 1.0,
		},
		"database": map[string]any{
			"driver": DriverSQLite,
			"dsn":    "quotes.db",
			// Well under the Postgres server default of 100 connections.
			"max_open_conns":    20,
			"max_idle_conns":    5,
			"conn_max_lifetime": "30m",
		},
		"client": map[string]any{
			"timeout": "10s",
			"retry": map[string]any{
				"max_attempts":     3,
				"initial_interval": "100ms",
				"max_interval":     "2s",
				"multiplier":       2.0,
				"jitter_factor":    0.25,
			},
			"circuit_breaker": map[string]any{
				"max_failures":    5,
				"timeout":         "30s",
				"half_open_limit": 3,
			},
			"transport": map[string]any{
				"max_idle_conns":          100,
				"max_idle_conns_per_host": 10,
				"idle_conn_timeout":       "90s",
			},
		},
		"services": map[string]any{
			"quote": map[string]any{
				"name":     "upstream-quotes",
				"base_url": "https://api.quotable.io",
			},
		},
		"import": map[string]any{
			"max_batch":   50,
			"concurrency": 4,
		},
	}
}
