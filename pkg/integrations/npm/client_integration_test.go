//go:build integration

package npm

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/tipjar/pkg/cache"
	errs "github.com/matzehuels/tipjar/pkg/errors"
)

func TestFetchPackage_Integration(t *testing.T) {
	client := NewClient(cache.NewNullCache(), time.Hour, "")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pkg, err := client.FetchPackage(ctx, "express", false)
	if err != nil {
		t.Fatalf("FetchPackage(express) error: %v", err)
	}
	if len(pkg.Dependencies) == 0 {
		t.Error("express should have dependencies")
	}
	if _, ok := pkg.Repo(); !ok {
		t.Error("express should declare a GitHub repository")
	}

	_, err = client.FetchPackage(ctx, "this-package-should-not-exist-12345", false)
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
