package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Structure verifies structure of all file system errors.
func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name    string
		err     error
		code    gn.ErrorCode
		path    string
		wrapped string
	}{
		{
			name:    "CreateDirError",
			err:     CreateDirError("/test/dir", originalErr),
			code:    errcode.CreateDirError,
			path:    "/test/dir",
			wrapped: "cannot create",
		},
		{
			name:    "CopyFileError",
			err:     CopyFileError("/test/config.yaml", originalErr),
			code:    errcode.CopyFileError,
			path:    "/test/config.yaml",
			wrapped: "cannot copy",
		},
		{
			name:    "WriteFileError",
			err:     WriteFileError("/test/tree.html", originalErr),
			code:    errcode.WriteFileError,
			path:    "/test/tree.html",
			wrapped: "cannot write",
		},
		{
			name:    "ReadFileError",
			err:     ReadFileError("/test/config.yaml", originalErr),
			code:    errcode.ReadFileError,
			path:    "/test/config.yaml",
			wrapped: "cannot read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)

			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok,
				"Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s",
				"Message should contain format placeholder")

			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
			assert.Contains(t, gnErr.Err.Error(), tt.wrapped)
			assert.Contains(t, gnErr.Err.Error(), "from",
				"Error should mention caller context")
		})
	}
}
