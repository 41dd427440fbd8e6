package git

import "context"

// IsIgnored reports whether relativePath is ignored by git inside dir.
func (g *CLI) IsIgnored(ctx context.Context, dir, relativePath string) (bool, error) {
	if _, err := g.runIn(ctx, dir, "check-ignore", "-q", "--", relativePath); err != nil {
		if CodeOf(err) == CodeNotARepo {
			return false, err
		}
		return false, nil
	}
	return true, nil
}
