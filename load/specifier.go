/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind classifies a source reference.
type Kind int

const (
	// KindLocal is a file path, relative to the loader root unless absolute.
	KindLocal Kind = iota
	// KindNPM is npm:<package>/<file>, found under node_modules.
	KindNPM
	// KindJSR is jsr:@scope/pkg/<file>, found under node_modules/@jsr.
	KindJSR
	// KindURL is an http or https URL.
	KindURL
)

// Specifier is a parsed source reference.
type Specifier struct {
	Kind    Kind
	Package string
	File    string
	Raw     string
}

// packagePattern matches npm:@scope/pkg/path, npm:pkg/path and the jsr: forms.
var packagePattern = regexp.MustCompile(`^(npm|jsr):(@[^/]+/[^/]+|[^/]+)(?:/(.*))?$`)

// ParseSpecifier classifies ref.
func ParseSpecifier(ref string) Specifier {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return Specifier{Kind: KindURL, Raw: ref}
	}
	if m := packagePattern.FindStringSubmatch(ref); m != nil {
		kind := KindNPM
		if m[1] == "jsr" {
			kind = KindJSR
		}
		return Specifier{Kind: kind, Package: m[2], File: m[3], Raw: ref}
	}
	return Specifier{Kind: KindLocal, File: ref, Raw: ref}
}

// IsPackage reports whether s names a file inside an npm or jsr package.
func (s Specifier) IsPackage() bool {
	return s.Kind == KindNPM || s.Kind == KindJSR
}

// modulePath returns the package directory name under node_modules.
// JSR packages installed through the npm compatibility layer live at
// @jsr/scope__pkg.
func (s Specifier) modulePath() string {
	if s.Kind != KindJSR {
		return s.Package
	}
	scoped := strings.TrimPrefix(s.Package, "@")
	return filepath.Join("@jsr", strings.Replace(scoped, "/", "__", 1))
}

// CDN names a package CDN for network fallback.
type CDN string

const (
	CDNUnpkg    CDN = "unpkg"
	CDNJSDelivr CDN = "jsdelivr"
	CDNEsmSh    CDN = "esm.sh"
)

// ParseCDN parses a CDN name. The empty string is unpkg.
func ParseCDN(s string) (CDN, error) {
	switch CDN(strings.ToLower(s)) {
	case "", CDNUnpkg:
		return CDNUnpkg, nil
	case CDNJSDelivr:
		return CDNJSDelivr, nil
	case CDNEsmSh:
		return CDNEsmSh, nil
	default:
		return "", fmt.Errorf("unknown cdn %q (want unpkg, jsdelivr or esm.sh)", s)
	}
}

// CDNURL returns the CDN URL for a package specifier. Only esm.sh
// serves jsr packages; a specifier without a file has no URL.
func (s Specifier) CDNURL(cdn CDN) (string, bool) {
	if !s.IsPackage() || s.File == "" {
		return "", false
	}
	switch cdn {
	case CDNEsmSh:
		if s.Kind == KindJSR {
			return "https://esm.sh/jsr/" + s.Package + "/" + s.File, true
		}
		return "https://esm.sh/" + s.Package + "/" + s.File, true
	case CDNJSDelivr:
		if s.Kind == KindJSR {
			return "", false
		}
		return "https://cdn.jsdelivr.net/npm/" + s.Package + "/" + s.File, true
	default:
		if s.Kind == KindJSR {
			return "", false
		}
		return "https://unpkg.com/" + s.Package + "/" + s.File, true
	}
}

// isInsideDir reports whether path stays within dir after cleaning.
func isInsideDir(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
