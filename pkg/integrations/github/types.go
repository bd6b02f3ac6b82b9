package github

import "github.com/matzehuels/tipjar/pkg/integrations"

// Repo identifies a GitHub repository by owner and name.
type Repo = integrations.Repo

// collaboratorResponse is one entry of the collaborators listing. Only the
// login is used.
type collaboratorResponse struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}
