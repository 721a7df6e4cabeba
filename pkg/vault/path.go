package vault

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var pathReplacer = strings.NewReplacer(
	"\\", "/",
	"\u00a0", " ",
	"\u202f", " ",
)

// NormalizePath canonicalizes a vault-relative path the way the host does:
// separators are unified and collapsed, "." and ".." segments are resolved
// without ever escaping the vault root, leading and trailing separators are
// dropped and the result is NFC-normalized. The vault root is "".
func NormalizePath(p string) string {
	p = norm.NFC.String(pathReplacer.Replace(p))

	parts := make([]string, 0, strings.Count(p, "/")+1)
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(parts) > 0 {
				parts = parts[:len(parts)-1]
			}
		default:
			parts = append(parts, seg)
		}
	}
	return strings.Join(parts, "/")
}

// Dir returns the parent folder of a normalized path, "" for the vault root.
func Dir(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return ""
	}
	return p[:i]
}
