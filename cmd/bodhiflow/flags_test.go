package main

import (
	"io"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/bodhiflow/internal/config"
)

func TestOptionsApply(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		run        config.RunConfig
		wantPhase1 bool
		wantPhase2 bool
	}{
		{"defaults run both phases", nil, config.RunConfig{}, true, true},
		{"config picks phase 2", nil, config.RunConfig{RunPhase2: true}, false, true},
		{"flag disables phase 2", []string{"-phase2=false"}, config.RunConfig{}, false, false},
		{"flag overrides config", []string{"-phase1"}, config.RunConfig{RunPhase2: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags("run", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error = %v", err)
			}
			cfg := &config.Config{Run: tt.run}
			opts.apply(cfg)
			if cfg.Run.RunPhase1 != tt.wantPhase1 || cfg.Run.RunPhase2 != tt.wantPhase2 {
				t.Errorf("phases = %t/%t, want %t/%t", cfg.Run.RunPhase1, cfg.Run.RunPhase2, tt.wantPhase1, tt.wantPhase2)
			}
		})
	}
}

func TestOptionsOverrides(t *testing.T) {
	opts, err := parseFlags("run", []string{
		"-language", "Vietnamese", "-start", "3", "-end", "7", "-resume",
		"-workers", "2", "-async-workers", "5", "-docx", "-styles", "Summary, Educational ,",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	cfg := &config.Config{}
	cfg.Performance.MaxWorkersProcesses = 4
	opts.apply(cfg)

	if cfg.Run.Language != "Vietnamese" || cfg.Run.StartIndex != 3 || cfg.Run.EndIndex != 7 {
		t.Errorf("run = %+v", cfg.Run)
	}
	if !cfg.Run.Resume || !cfg.Run.DocxExport || cfg.Run.SkipExisting {
		t.Errorf("switches = %+v", cfg.Run)
	}
	if cfg.Performance.MaxWorkersProcesses != 2 || cfg.Performance.MaxWorkersAsync != 5 {
		t.Errorf("performance = %+v", cfg.Performance)
	}
	if got := opts.styleNames(); !reflect.DeepEqual(got, []string{"Summary", "Educational"}) {
		t.Errorf("styleNames() = %v", got)
	}
}

func TestParseFlagsRejectsExtraArgs(t *testing.T) {
	if _, err := parseFlags("run", []string{"-input", "x", "stray"}, io.Discard); err == nil {
		t.Error("parseFlags() expected error for stray argument")
	}
}
