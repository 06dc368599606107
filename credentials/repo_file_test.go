package credentials_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
)

func TestFileRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	repo := credentials.NewFileRepo(path)

	_, err := repo.Get(credentials.KeyAccessToken)
	require.ErrorIs(t, err, credentials.ErrNotFound)

	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))
	require.NoError(t, repo.Set(credentials.KeyRefreshToken, "R1"))

	v, err := repo.Get(credentials.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "A1", v)

	// A new repo over the same path sees the persisted values.
	reopened := credentials.NewFileRepo(path)
	v, err = reopened.Get(credentials.KeyRefreshToken)
	require.NoError(t, err)
	require.Equal(t, "R1", v)
}

func TestFileRepoRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	repo := credentials.NewFileRepo(path)

	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))
	require.NoError(t, repo.Remove(credentials.KeyAccessToken))

	_, err := repo.Get(credentials.KeyAccessToken)
	require.ErrorIs(t, err, credentials.ErrNotFound)

	// Removing an absent key is not an error.
	require.NoError(t, repo.Remove(credentials.KeyAccessToken))
}

func TestFileRepoPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	repo := credentials.NewFileRepo(path)
	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEncryptedFileRepoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	key := make([]byte, 32)
	copy(key, "0123456789abcdef0123456789abcdef")

	repo, err := credentials.NewEncryptedFileRepo(path, key)
	require.NoError(t, err)
	require.NoError(t, repo.Set(credentials.KeyAccessToken, "super-secret-access-token"))

	v, err := repo.Get(credentials.KeyAccessToken)
	require.NoError(t, err)
	require.Equal(t, "super-secret-access-token", v)

	// The token must not appear in the file in the clear.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "super-secret-access-token")
}

func TestEncryptedFileRepoWrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	key := make([]byte, 32)
	copy(key, "correct key")

	repo, err := credentials.NewEncryptedFileRepo(path, key)
	require.NoError(t, err)
	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))

	wrong := make([]byte, 32)
	copy(wrong, "wrong key")
	other, err := credentials.NewEncryptedFileRepo(path, wrong)
	require.NoError(t, err)

	_, err = other.Get(credentials.KeyAccessToken)
	require.Error(t, err)
}

func TestEncryptedFileRepoBadKeySize(t *testing.T) {
	_, err := credentials.NewEncryptedFileRepo("ignored", []byte("short"))
	require.Error(t, err)
}
