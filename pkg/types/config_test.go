package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:    "negative threshold returns ErrThresholdInvalid",
			config:  Config{Backend: BackendJSON, LowStockThreshold: -1},
			wantErr: ErrThresholdInvalid,
		},
		{
			name:   "valid json config",
			config: Config{Backend: BackendJSON, DataDir: "/tmp/data"},
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/data"},
		},
		{
			name:   "json with empty DataDir is valid at config level",
			config: Config{Backend: BackendJSON, DataDir: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfigThreshold(t *testing.T) {
	if got := (Config{}).Threshold(); got != DefaultLowStockThreshold {
		t.Errorf("Threshold() = %d, want default %d", got, DefaultLowStockThreshold)
	}
	if got := (Config{LowStockThreshold: 12}).Threshold(); got != 12 {
		t.Errorf("Threshold() = %d, want 12", got)
	}
}
