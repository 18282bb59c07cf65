package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"dev with default secret", Config{Env: "dev", JWTSecret: "supersecretkey"}, false},
		{"prod with default secret", Config{Env: "prod", JWTSecret: "supersecretkey"}, true},
		{"prod with empty secret", Config{Env: "prod", JWTSecret: ""}, true},
		{"prod with real secret", Config{Env: "prod", JWTSecret: "s3cr3t-value"}, false},
		{"empty secret", Config{Env: "dev", JWTSecret: ""}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{
		DBHost: "db.internal",
		DBPort: "5433",
		DBName: "blogdb",
		DBUser: "blog",
		DBPass: "pw",
	}
	want := "postgres://blog:pw@db.internal:5433/blogdb?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL() = %q, want %q", got, want)
	}
}

func TestParseCORSOrigins(t *testing.T) {
	got := parseCORSOrigins(" https://blog.example.com, http://localhost:3000 ,")
	if len(got) != 2 || got[0] != "https://blog.example.com" || got[1] != "http://localhost:3000" {
		t.Errorf("parseCORSOrigins() = %v", got)
	}
	if parseCORSOrigins("") != nil {
		t.Error("expected nil for empty input")
	}
}
