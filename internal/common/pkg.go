package common

import (
	"path"
	"strings"
)

var identReplacer = strings.NewReplacer("-", "_", ".", "_")

// PkgAlias returns the package name implied by an import path: its last
// element with "-" and "." turned into underscores. Empty for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return identReplacer.Replace(path.Base(pkgPath))
}
