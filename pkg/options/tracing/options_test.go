package tracing

import (
	"testing"
	"time"
)

func TestNewOptions(t *testing.T) {
	opts := NewOptions()

	if opts.Enabled {
		t.Error("Expected tracing to be disabled by default")
	}

	if opts.ServiceName != "atlas" {
		t.Errorf("Expected service name to be 'atlas', got %s", opts.ServiceName)
	}

	if opts.ExporterType != ExporterOTLPGRPC {
		t.Errorf("Expected exporter type to be OTLP gRPC, got %s", opts.ExporterType)
	}

	if opts.SamplerType != SamplerParentBased {
		t.Errorf("Expected sampler type to be parent-based, got %s", opts.SamplerType)
	}

	if opts.SamplerRatio != 1.0 {
		t.Errorf("Expected sampler ratio to be 1.0, got %f", opts.SamplerRatio)
	}

	if errs := opts.Validate(); len(errs) > 0 {
		t.Errorf("default options should validate cleanly, got %v", errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		wantErr bool
	}{
		{
			name:    "disabled tracing is valid",
			opts:    &Options{Enabled: false},
			wantErr: false,
		},
		{
			name: "missing service name",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "localhost:4317",
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "missing endpoint for OTLP exporter",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "",
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "invalid exporter type",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  "invalid",
				Endpoint:      "localhost:4317",
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "invalid sampler type",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "localhost:4317",
				SamplerType:   "invalid",
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "invalid sampler ratio",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "localhost:4317",
				SamplerType:   SamplerRatio,
				SamplerRatio:  1.5,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "negative batch timeout",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "localhost:4317",
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  -1 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: true,
		},
		{
			name: "valid configuration",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterOTLPGRPC,
				Endpoint:      "localhost:4317",
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: false,
		},
		{
			name: "stdout exporter without endpoint",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterStdout,
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: false,
		},
		{
			name: "noop exporter without endpoint",
			opts: &Options{
				Enabled:       true,
				ServiceName:   "test",
				ExporterType:  ExporterNoop,
				SamplerType:   SamplerAlwaysOn,
				BatchTimeout:  5 * time.Second,
				BatchMaxSize:  512,
				ExportTimeout: 30 * time.Second,
				MaxQueueSize:  2048,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.opts.Validate()
			if (len(errs) > 0) != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	opts := &Options{}
	if err := opts.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if opts.Headers == nil {
		t.Error("Expected headers to be initialized")
	}

	if opts.ResourceAttributes == nil {
		t.Error("Expected resource attributes to be initialized")
	}
}
