/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package diagnostic_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tokencraft/diagnostic"
	"bennypowers.dev/tokencraft/schema"
)

func TestNew_Severity(t *testing.T) {
	tests := []struct {
		code diagnostic.Code
		want diagnostic.Severity
	}{
		{diagnostic.Circular, diagnostic.SeverityWarning},
		{diagnostic.UnresolvedFallback, diagnostic.SeverityWarning},
		{diagnostic.Missing, diagnostic.SeverityError},
		{diagnostic.TypeMismatch, diagnostic.SeverityError},
		{diagnostic.DepthExceeded, diagnostic.SeverityError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, diagnostic.New(tt.code, "a", "msg").Severity)
		})
	}
}

func TestDiagnostic_Error(t *testing.T) {
	d := diagnostic.New(diagnostic.Missing, "color.bg", "not found").WithHint("check the path")
	assert.Equal(t, "MISSING color.bg: not found (check the path)", d.Error())
	assert.True(t, errors.Is(d, schema.ErrUnresolvedReference))

	assert.Equal(t, "CIRCULAR: cycle", diagnostic.New(diagnostic.Circular, "", "cycle").Error())
}

func TestDiagnostic_JSON(t *testing.T) {
	d := diagnostic.New(diagnostic.TypeMismatch, "theme", "undefined context").AsWarning()

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"TYPE_MISMATCH","severity":"warning","path":"theme","message":"undefined context"}`, string(data))

	var got diagnostic.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(`{"code":"MISSING","severity":"error","message":"gone"}`), &got))
	assert.Equal(t, diagnostic.SeverityError, got.Severity)
	assert.Equal(t, diagnostic.Missing, got.Code)
}
