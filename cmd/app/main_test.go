package main

import "testing"

func TestCorsConfig_ConcreteOriginAllowsCredentials(t *testing.T) {
	cfg := corsConfig("http://localhost:3000")
	if cfg.AllowOrigins != "http://localhost:3000" {
		t.Fatalf("AllowOrigins = %q", cfg.AllowOrigins)
	}
	if !cfg.AllowCredentials {
		t.Fatal("expected credentials allowed for a concrete origin")
	}
}

func TestCorsConfig_WildcardDisablesCredentials(t *testing.T) {
	// fiber's cors middleware panics when AllowCredentials is combined
	// with a wildcard origin.
	cfg := corsConfig("*")
	if cfg.AllowCredentials {
		t.Fatal("expected credentials disabled for wildcard origin")
	}
}
