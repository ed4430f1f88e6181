package config

import (
	"fmt"
	"strings"
)

// Repo names a GitHub repository that target paths are read from.
type Repo struct {
	Owner string
	Name  string
	Ref   string // empty means the default branch
}

func ParseRepo(nwo, ref string) (Repo, error) {
	parts := strings.SplitN(nwo, "/", 2)
	if len(parts) != 2 {
		return Repo{}, fmt.Errorf("repo must be in owner/repo format (got %q)", nwo)
	}
	r := Repo{Owner: parts[0], Name: parts[1], Ref: ref}
	if err := r.Validate(); err != nil {
		return Repo{}, err
	}
	return r, nil
}

func (r Repo) NWO() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

func (r Repo) Validate() error {
	if r.Owner == "" || r.Name == "" {
		return fmt.Errorf("owner and repo are required (use -R owner/repo)")
	}
	if strings.Contains(r.Name, "/") {
		return fmt.Errorf("repo name %q must not contain '/'", r.Name)
	}
	return nil
}
