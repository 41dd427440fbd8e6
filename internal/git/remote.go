package git

import (
	"context"
	"fmt"
)

// RemoteURL returns the URL configured for remote, or "" when the remote is
// not configured.
func (g *CLI) RemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := g.run(ctx, "config", "--get", fmt.Sprintf("remote.%s.url", remote))
	if err != nil {
		// `git config --get` exits 1 for an unset key
		if CodeOf(err) == CodeNotARepo {
			return "", err
		}
		return "", nil
	}
	return out, nil
}
