package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("grid %dx%d", 50, 50)
	if got != "grid 50x50" {
		t.Errorf("custom logger got %q, want %q", got, "grid 50x50")
	}

	// nil installs a no-op
	got = ""
	SetLogger(nil)
	Logf("muted")
	if got != "" {
		t.Errorf("no-op logger should not forward, got %q", got)
	}
}

func TestDebugf(t *testing.T) {
	original, originalVerbose := Logf, Verbose
	defer func() { Logf, Verbose = original, originalVerbose }()

	calls := 0
	SetLogger(func(string, ...interface{}) { calls++ })

	Verbose = false
	Debugf("hidden")
	if calls != 0 {
		t.Errorf("Debugf logged %d times with Verbose=false", calls)
	}

	Verbose = true
	Debugf("shown")
	if calls != 1 {
		t.Errorf("Debugf logged %d times with Verbose=true, want 1", calls)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
}
