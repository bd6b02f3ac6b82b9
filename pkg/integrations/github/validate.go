package github

import (
	"strings"

	errs "github.com/matzehuels/tipjar/pkg/errors"
)

// ParseRepoRef parses an "owner/repo" string. Both parts are sanitized to
// the identifier alphabet and must be non-empty afterwards.
func ParseRepoRef(ref string) (Repo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(ref), "/")
	if !ok {
		return Repo{}, errs.New(errs.ErrCodeInvalidInput, "invalid repo %q: use owner/repo", ref)
	}
	return ValidateRepoRef(owner, name)
}

// ValidateRepoRef sanitizes owner and repo and returns the resulting
// coordinate, or INVALID_INPUT when either part is empty after sanitizing.
func ValidateRepoRef(owner, repo string) (Repo, error) {
	o, err := errs.SanitizeIdentifier("owner", owner)
	if err != nil {
		return Repo{}, err
	}
	r, err := errs.SanitizeIdentifier("repo", repo)
	if err != nil {
		return Repo{}, err
	}
	return Repo{Owner: o, Name: r}, nil
}
