package version

import (
	"testing"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersionCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		toolVersion   string
		configVersion string
		expectError   bool
		errorContains string
	}{
		// Compatible cases
		{
			name:          "exact match",
			toolVersion:   "1.2.0",
			configVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "tool patch higher",
			toolVersion:   "1.2.1",
			configVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "config patch higher",
			toolVersion:   "1.2.0",
			configVersion: "1.2.5",
			expectError:   false,
		},
		{
			name:          "same major minor different patch",
			toolVersion:   "2.5.10",
			configVersion: "2.5.3",
			expectError:   false,
		},

		// Incompatible cases
		{
			name:          "tool minor higher",
			toolVersion:   "1.3.0",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "tool minor lower",
			toolVersion:   "1.1.0",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major version differs",
			toolVersion:   "2.0.0",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "major version mismatch",
		},
		{
			name:          "tool is main",
			toolVersion:   "main",
			configVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "tool is main with different config",
			toolVersion:   "main",
			configVersion: "1.3.0",
			expectError:   false,
		},
		{
			name:          "both are main",
			toolVersion:   "main",
			configVersion: "main",
			expectError:   false,
		},
		{
			name:          "config is main",
			toolVersion:   "1.2.0",
			configVersion: "main",
			expectError:   false,
		},

		// Edge cases with v prefix
		{
			name:          "v prefix on tool",
			toolVersion:   "v1.2.0",
			configVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "v prefix on config",
			toolVersion:   "1.2.0",
			configVersion: "v1.2.0",
			expectError:   false,
		},
		{
			name:          "v prefix on both",
			toolVersion:   "v1.2.0",
			configVersion: "v1.2.0",
			expectError:   false,
		},

		// Edge cases with prerelease and metadata
		{
			name:          "prerelease version",
			toolVersion:   "1.2.0-alpha",
			configVersion: "1.2.0",
			expectError:   false,
		},
		{
			name:          "build metadata",
			toolVersion:   "1.2.0+build123",
			configVersion: "1.2.0",
			expectError:   false,
		},

		// Invalid versions
		{
			name:          "invalid tool version",
			toolVersion:   "not-a-version",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "invalid tool version",
		},
		{
			name:          "invalid config version",
			toolVersion:   "1.2.0",
			configVersion: "not-a-version",
			expectError:   true,
			errorContains: "invalid config version",
		},
		{
			name:          "empty tool version",
			toolVersion:   "",
			configVersion: "1.2.0",
			expectError:   true,
			errorContains: "invalid tool version",
		},
		{
			name:          "empty config version",
			toolVersion:   "1.2.0",
			configVersion: "",
			expectError:   true,
			errorContains: "invalid config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersionCompatibility(tt.toolVersion, tt.configVersion)

			if tt.expectError {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckVersionCompatibilityErrorCodes(t *testing.T) {
	err := CheckVersionCompatibility("1.2.0", "1.3.0")
	assert.True(t, errors.HasCode(err, errors.ErrCodeVersionMismatch))

	err = CheckVersionCompatibility("1.2.0", "not-a-version")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}
