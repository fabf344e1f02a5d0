package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

var cidRe = regexp.MustCompile("(Qm[1-9A-HJ-NP-Za-km-z]{44})")

// ResolveUri rewrites ipfs uris against a public gateway. Plain http uris
// pass through untouched.
func ResolveUri(uri, gateway string) string {
	if strings.HasPrefix(uri, "ipfs://") {
		return fmt.Sprintf("%s/ipfs/%s", gateway, uri[7:])
	}

	if parts := cidRe.FindStringSubmatch(uri); len(parts) == 2 && !strings.HasPrefix(uri, "http") {
		return fmt.Sprintf("%s/ipfs/%s", gateway, parts[1])
	}

	return uri
}
