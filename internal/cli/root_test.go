// ABOUTME: Unit tests for the root command
// ABOUTME: Tests default command routing and help output
package cli

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestWithDefaultCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"bare invocation runs", nil, []string{"run"}},
		{"flags go to run", []string{"--name", "baseline"}, []string{"run", "--name", "baseline"}},
		{"known command kept", []string{"list", "-n", "5"}, []string{"list", "-n", "5"}},
		{"alias kept", []string{"ls"}, []string{"ls"}},
		{"help kept", []string{"--help"}, []string{"--help"}},
		{"explicit run kept", []string{"run"}, []string{"run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withDefaultCommand(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	t.Run("shows help", func(t *testing.T) {
		var stdout bytes.Buffer
		rootCmd.SetOut(&stdout)
		rootCmd.SetErr(&stdout)
		defer rootCmd.SetOut(nil)
		defer rootCmd.SetErr(nil)

		rootCmd.SetArgs([]string{"--help"})
		if err := rootCmd.Execute(); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if !strings.Contains(stdout.String(), "runlog") {
			t.Errorf("expected help output, got: %s", stdout.String())
		}
	})

	t.Run("has correct metadata", func(t *testing.T) {
		if rootCmd.Use != "runlog" {
			t.Errorf("expected Use to be 'runlog', got: %s", rootCmd.Use)
		}
		if !strings.Contains(rootCmd.Long, "inference_logs/<run name>_run.log") {
			t.Errorf("expected Long description to mention the log path, got: %s", rootCmd.Long)
		}
	})

	t.Run("has subcommands registered", func(t *testing.T) {
		want := map[string]bool{"run": false, "list": false, "show": false, "sync": false, "mcp": false}
		for _, cmd := range rootCmd.Commands() {
			if _, ok := want[cmd.Name()]; ok {
				want[cmd.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected root command to have %q subcommand registered", name)
			}
		}
	})
}
