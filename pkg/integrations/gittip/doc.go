// Package gittip resolves GitHub logins to donation platform handles.
//
// The platform exposes no lookup API; instead HEAD /on/github/{login}/
// redirects (302) to the user's canonical profile when one exists. The
// client disables redirect following and derives the handle from the
// Location header.
//
// Missing profiles are a normal outcome and are stored in the response
// cache like found ones. Transport failures and 5xx statuses are errors and
// are never cached.
package gittip
