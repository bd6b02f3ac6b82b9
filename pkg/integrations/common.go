package integrations

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DefaultTimeout bounds every outbound request so one slow upstream cannot
// stall a whole fan-out stage.
const DefaultTimeout = 10 * time.Second

// Repo identifies a GitHub repository by owner and name.
type Repo struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// String returns "owner/name".
func (r Repo) String() string { return r.Owner + "/" + r.Name }

// NewHTTPClient creates an HTTP client with the given request timeout.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// githubRepoURL requires the trailing .git and forbids slashes inside the
// owner and name segments.
var githubRepoURL = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)\.git`)

var repoURLReplacer = strings.NewReplacer(
	"git@github.com:", "https://github.com/",
)

// ExtractGitHubRepo finds the GitHub owner and repository in a package's
// repository URL, e.g. "git+https://github.com/expressjs/express.git".
// SSH-style "git@github.com:owner/repo.git" URLs are accepted too.
// Returns ok=false when the URL does not match.
func ExtractGitHubRepo(raw string) (repo Repo, ok bool) {
	m := githubRepoURL.FindStringSubmatch(repoURLReplacer.Replace(strings.TrimSpace(raw)))
	if len(m) < 3 {
		return Repo{}, false
	}
	return Repo{Owner: m[1], Name: m[2]}, true
}

// JoinURL appends percent-encoded path segments to base.
//
//	JoinURL("https://api.github.com", "repos", "a b", "c") // https://api.github.com/repos/a%20b/c
func JoinURL(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
