package funding

import (
	"github.com/matzehuels/tipjar/pkg/integrations/github"
	"github.com/matzehuels/tipjar/pkg/integrations/npm"
	"github.com/matzehuels/tipjar/pkg/memo"
)

// Caches holds the memoized lookups shared by every resolution. Entries live
// as long as the Caches value; failed lookups are memoized as empty results.
type Caches struct {
	Packages *memo.Memo[string, *npm.Package]
	Owners   *memo.Memo[string, []string]
	Repos    *memo.Memo[github.Repo, []string]
	Handles  *memo.Memo[string, string]
	Views    *memo.Memo[string, Result]
}

// NewCaches creates empty caches.
func NewCaches() *Caches {
	return &Caches{
		Packages: memo.New[string, *npm.Package]("packages"),
		Owners:   memo.New[string, []string]("owners"),
		Repos:    memo.New[github.Repo, []string]("repos"),
		Handles:  memo.New[string, string]("handles"),
		Views:    memo.New[string, Result]("views"),
	}
}

// Sizes reports the number of entries per cache, keyed by cache name.
func (c *Caches) Sizes() map[string]int {
	return map[string]int{
		c.Packages.Name(): c.Packages.Len(),
		c.Owners.Name():   c.Owners.Len(),
		c.Repos.Name():    c.Repos.Len(),
		c.Handles.Name():  c.Handles.Len(),
		c.Views.Name():    c.Views.Len(),
	}
}
