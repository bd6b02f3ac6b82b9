//go:build integration

package github

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
)

func TestCollaborators_Integration(t *testing.T) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		t.Skip("GITHUB_TOKEN not set; the collaborators endpoint requires push access")
	}
	client := NewClient(cache.NewNullCache(), time.Hour, "", token)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	owner := os.Getenv("TIPJAR_TEST_OWNER")
	repo := os.Getenv("TIPJAR_TEST_REPO")
	if owner == "" || repo == "" {
		t.Skip("TIPJAR_TEST_OWNER/TIPJAR_TEST_REPO not set")
	}

	logins, err := client.Collaborators(ctx, owner, repo, true)
	if err != nil {
		t.Fatalf("Collaborators(%s/%s) error: %v", owner, repo, err)
	}
	if len(logins) == 0 {
		t.Errorf("expected at least one collaborator on %s/%s", owner, repo)
	}
}
