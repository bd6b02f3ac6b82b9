// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package documents from the npm registry
// (https://registry.npmjs.org) and reduces them to what funding discovery
// needs: the latest version's dependency names and the declared repository.
//
// # Usage
//
//	client := npm.NewClient(cache.NewNullCache(), 24*time.Hour, "")
//	pkg, err := client.FetchPackage(ctx, "express", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if repo, ok := pkg.Repo(); ok {
//	    fmt.Println(repo) // expressjs/express
//	}
//
// # Version Selection
//
// Dependencies come from the version tagged "latest" in dist-tags, reading
// both "dependencies" and "devDependencies". Version ranges are discarded.
// When the latest tag points at a version missing from the document, the
// package is returned with no dependencies.
//
// # Repository Field
//
// The registry allows "repository" to be an object or a bare shorthand
// string. [Package.Repo] only understands the object form; the document's
// top-level field is preferred over the latest version's.
package npm
