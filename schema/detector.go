/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "fmt"

// DetectionConfig provides configuration for version detection.
type DetectionConfig struct {
	// DefaultVersion is used when the document declares nothing.
	DefaultVersion Version
}

// DetectVersion detects the version of a decoded resolution document.
// Priority order:
// 1. version field in the document root
// 2. $schema field in the document root
// 3. Config default version
//
// A declared but unrecognized version is an error; a document declaring
// nothing returns Unknown.
func DetectVersion(data map[string]any, config *DetectionConfig) (Version, error) {
	if raw, ok := data["version"]; ok {
		s, ok := raw.(string)
		if !ok {
			return Unknown, fmt.Errorf("%w: version must be a string, got %T", ErrUnknownVersion, raw)
		}
		return FromString(s)
	}

	if schemaURL, ok := data["$schema"].(string); ok {
		return FromURL(schemaURL)
	}

	if config != nil && config.DefaultVersion != Unknown {
		return config.DefaultVersion, nil
	}

	return Unknown, nil
}
