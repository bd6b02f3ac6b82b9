// Package github provides an HTTP client for the GitHub API.
//
// # Overview
//
// This package lists repository collaborators from GitHub
// (https://api.github.com). Funding discovery uses the logins to probe the
// donation platform for profiles.
//
// # Usage
//
//	client := github.NewClient(cache.NewNullCache(), 24*time.Hour, "", token)
//
//	logins, err := client.Collaborators(ctx, "expressjs", "express", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(logins)
//
// # Authentication
//
// A GitHub personal access token is optional but recommended to avoid rate
// limits. Without a token, the client is limited to 60 requests/hour.
// With a token, the limit is 5000 requests/hour. GitHub only answers the
// collaborators endpoint for callers with push access; other callers get a
// non-200 status, which is returned as an UPSTREAM_STATUS error.
//
// # Input
//
// [ParseRepoRef] turns an "owner/repo" argument into a sanitized [Repo].
// The client itself percent-encodes path segments but does not sanitize.
package github
