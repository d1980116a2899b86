package cmd

import (
	"log/slog"
	"testing"

	"github.com/spf13/cobra"

	"github.com/coursedesk/coursedesk/internal/guard"
)

func TestCommandRoute(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		want string
	}{
		{"login is public", loginCmd, guard.PathLogin},
		{"register is public", registerCmd, guard.PathRegister},
		{"version is public", versionCmd, guard.PathLogin},
		{"categories parent", categoriesCmd, guard.PathCategories},
		{"subcommand inherits parent route", categoriesListCmd, guard.PathCategories},
		{"courses subcommand", coursesApproveCmd, guard.PathCourses},
		{"whoami maps to settings", whoamiCmd, guard.PathSettings},
		{"unannotated defaults to dashboard", &cobra.Command{Use: "stray"}, guard.PathDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandRoute(tt.cmd); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"loud", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
