// Package pkg provides the libraries behind tipjar.
//
// # Overview
//
// Tipjar finds the collaborators behind an npm package (and its direct
// dependencies) or a GitHub repository and ranks those who have a donation
// profile. The pkg directory is organized into these areas:
//
//  1. [funding] - Resolution flows, aggregation and ranking
//  2. [integrations] - Upstream API clients (npm, GitHub, Gittip)
//  3. [memo] and [fanout] - Single-flight memoization and parallel fan-out
//  4. [cache] - TTL-bounded response cache backends
//  5. [errors], [httputil], [observability], [buildinfo] - Shared support
//
// # Architecture
//
// The data flow for a package lookup:
//
//	npm registry (package + dependencies)
//	         ↓
//	    repository URL → GitHub collaborators
//	         ↓
//	    HEAD /on/github/{login}/ → funding handle
//	         ↓
//	    [funding.Aggregate] → [funding.Rank]
//
// Every step is memoized per key, and independent steps run concurrently.
//
// [funding]: github.com/matzehuels/tipjar/pkg/funding
// [integrations]: github.com/matzehuels/tipjar/pkg/integrations
// [memo]: github.com/matzehuels/tipjar/pkg/memo
// [fanout]: github.com/matzehuels/tipjar/pkg/fanout
// [cache]: github.com/matzehuels/tipjar/pkg/cache
// [errors]: github.com/matzehuels/tipjar/pkg/errors
// [httputil]: github.com/matzehuels/tipjar/pkg/httputil
// [observability]: github.com/matzehuels/tipjar/pkg/observability
// [buildinfo]: github.com/matzehuels/tipjar/pkg/buildinfo
package pkg
