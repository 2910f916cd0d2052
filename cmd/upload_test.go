package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tonimelisma/sponsorctl/pkg/sponsorapi"
)

func TestUploadLogic(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(localPath, []byte("0123456789"), 0644))

	var gotPath, gotName string
	var gotSize int64
	var gotBody []byte
	a := newTestApp(t, &MockSDK{
		UploadFunc: func(path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error) {
			gotPath, gotName, gotSize = path, file.Name, file.Size
			gotBody, _ = io.ReadAll(file.Reader)
			assert.Nil(t, onProgress)
			return &sponsorapi.Result{JSON: true, Value: map[string]any{"filename": "logo.png"}}, nil
		},
	})

	output := captureOutput(t, func() {
		assert.NoError(t, uploadLogic(context.Background(), a, localPath, "/sponsors/1/logo", false))
	})

	assert.Equal(t, "/sponsors/1/logo", gotPath)
	assert.Equal(t, "logo.png", gotName)
	assert.Equal(t, int64(10), gotSize)
	assert.Equal(t, []byte("0123456789"), gotBody)
	assert.Contains(t, output, "Uploaded logo.png (10 B)")
	assert.Contains(t, output, "filename: logo.png")
}

func TestUploadLogicDrivesProgress(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(localPath, make([]byte, 4096), 0644))

	a := newTestApp(t, &MockSDK{
		UploadFunc: func(path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error) {
			require.NotNil(t, onProgress)
			onProgress(0.5)
			onProgress(1)
			return &sponsorapi.Result{}, nil
		},
	})

	captureOutput(t, func() {
		assert.NoError(t, uploadLogic(context.Background(), a, localPath, defaultUploadPath, true))
	})
}

func TestUploadLogicErrors(t *testing.T) {
	dir := t.TempDir()
	a := newTestApp(t, &MockSDK{
		UploadFunc: func(path string, file sponsorapi.UploadFile, onProgress sponsorapi.ProgressFunc) (*sponsorapi.Result, error) {
			return nil, errors.New(sponsorapi.MsgUploadTimeout)
		},
	})

	err := uploadLogic(context.Background(), a, filepath.Join(dir, "missing.bin"), defaultUploadPath, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = uploadLogic(context.Background(), a, dir, defaultUploadPath, false)
	assert.ErrorContains(t, err, "is a directory")

	localPath := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(localPath, []byte("x"), 0644))
	err = uploadLogic(context.Background(), a, localPath, defaultUploadPath, false)
	assert.ErrorContains(t, err, sponsorapi.MsgUploadTimeout)
}
