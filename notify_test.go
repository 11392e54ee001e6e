package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseNotifyMode(t *testing.T) {
	tests := []struct {
		input    string
		expected notifyMode
		wantErr  bool
	}{
		{"always", notifyAlways, false},
		{"never", notifyNever, false},
		{"on-repair", notifyOnRepair, false},
		{"", notifyOnRepair, false},
		{"invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("parseNotifyMode(%q)", tt.input), func(t *testing.T) {
			got, err := parseNotifyMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseNotifyMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("parseNotifyMode(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNotifyIfNeeded(t *testing.T) {
	var notified bool
	mockNotify := func(baseDir string, repaired []string) error {
		notified = true
		return nil
	}

	repaired := []string{"/work/test-results/reports"}

	tests := []struct {
		name         string
		mode         notifyMode
		repaired     []string
		shouldNotify bool
	}{
		{
			name:         "always mode with repairs",
			mode:         notifyAlways,
			repaired:     repaired,
			shouldNotify: true,
		},
		{
			name:         "always mode without repairs",
			mode:         notifyAlways,
			repaired:     nil,
			shouldNotify: false,
		},
		{
			name:         "never mode with repairs",
			mode:         notifyNever,
			repaired:     repaired,
			shouldNotify: false,
		},
		{
			name:         "on-repair mode with repairs",
			mode:         notifyOnRepair,
			repaired:     repaired,
			shouldNotify: true,
		},
		{
			name:         "on-repair mode without repairs",
			mode:         notifyOnRepair,
			repaired:     nil,
			shouldNotify: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notified = false
			err := notifyIfNeeded(mockNotify, tt.mode, "/work", tt.repaired)
			if err != nil {
				t.Errorf("notifyIfNeeded() error = %v", err)
			}
			if notified != tt.shouldNotify {
				t.Errorf("notifyIfNeeded() notified = %v, want %v", notified, tt.shouldNotify)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	repaired := []string{
		"/work/test-results/screenshots",
		"/work/test-results/reports",
	}

	subject, body := formatMessage("/work", repaired)

	wantSubject := `Test output directories under "/work" were re-created`
	if subject != wantSubject {
		t.Errorf("subject = %q, want %q", subject, wantSubject)
	}

	for _, path := range repaired {
		if !strings.Contains(body, "> "+path+"\n") {
			t.Errorf("body %q missing path %q", body, path)
		}
	}
}
