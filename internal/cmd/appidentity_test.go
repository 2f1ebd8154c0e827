package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/callpace/callpace/internal/appid"
)

func TestAppIdentityLoading(t *testing.T) {
	ctx := context.Background()
	identity, err := appid.Get(ctx)
	if err != nil {
		t.Fatalf("Failed to load app identity: %v", err)
	}
	if identity == nil {
		t.Fatal("App identity is nil")
	}

	if identity.BinaryName != "callpace" {
		t.Errorf("Expected binary name callpace, got %q", identity.BinaryName)
	}
	if identity.ConfigName == "" {
		t.Error("Expected config name to be non-empty")
	}
	if identity.EnvPrefix == "" {
		t.Error("Expected env prefix to be non-empty")
	}
	if identity.EnvPrefix != "" && !strings.HasSuffix(identity.EnvPrefix, "_") {
		t.Errorf("Expected env prefix to end with underscore, got %q", identity.EnvPrefix)
	}
}
