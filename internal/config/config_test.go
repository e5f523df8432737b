package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("Expected default driver %q, got %q", DriverPostgres, cfg.Store.Driver)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Upload.DefaultFolder != "blogs" {
		t.Errorf("Expected default upload folder 'blogs', got %s", cfg.Upload.DefaultFolder)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("MONGODB_DATABASE", "site")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SITE_BASE_URL", "https://example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("Expected mongo driver, got %q", cfg.Store.Driver)
	}
	if cfg.Mongo.Database != "site" {
		t.Errorf("Expected database 'site', got %q", cfg.Mongo.Database)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("Expected 3s request timeout, got %v", cfg.Server.RequestTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Errorf("Expected 2 origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Site.BaseURL != "https://example.com" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.Site.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid postgres",
			cfg: Config{
				Store:    StoreConfig{Driver: DriverPostgres},
				Database: DatabaseConfig{Host: "localhost", Name: "portfolio"},
				Upload:   UploadConfig{MaxUploadSize: 1},
			},
		},
		{
			name: "postgres missing host",
			cfg: Config{
				Store:    StoreConfig{Driver: DriverPostgres},
				Database: DatabaseConfig{Name: "portfolio"},
				Upload:   UploadConfig{MaxUploadSize: 1},
			},
			wantErr: true,
		},
		{
			name: "mongo missing database",
			cfg: Config{
				Store:  StoreConfig{Driver: DriverMongo},
				Mongo:  MongoConfig{URI: "mongodb://localhost"},
				Upload: UploadConfig{MaxUploadSize: 1},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Store:  StoreConfig{Driver: "sqlite"},
				Upload: UploadConfig{MaxUploadSize: 1},
			},
			wantErr: true,
		},
		{
			name: "zero upload size",
			cfg: Config{
				Store:    StoreConfig{Driver: DriverPostgres},
				Database: DatabaseConfig{Host: "localhost", Name: "portfolio"},
			},
			wantErr: true,
		},
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
