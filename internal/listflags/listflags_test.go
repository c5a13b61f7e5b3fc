package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestAddJSONFlag(t *testing.T) {
	var target bool
	cmd := &cobra.Command{Use: "list"}
	AddJSONFlag(cmd, &target)

	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		t.Fatal("expected --json flag")
	}
	if flag.DefValue != "false" {
		t.Fatalf("expected default false, got %q", flag.DefValue)
	}
	if err := cmd.Flags().Parse([]string{"--json"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !target {
		t.Fatal("expected target to be set")
	}
}

func TestAddJSONFlagWithoutTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "show"}
	AddJSONFlag(cmd, nil)

	if cmd.Flags().Lookup("json") == nil {
		t.Fatal("expected --json flag")
	}
}
