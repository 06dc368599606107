package credentials_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Git-Commit-Therapy/sancommitto-client/credentials"
	"github.com/Git-Commit-Therapy/sancommitto-client/credentials/repofake"
)

func TestStoreSetAndGet(t *testing.T) {
	repo := repofake.NewFakeRepo()
	store := credentials.NewStore(repo)

	require.NoError(t, store.SetAccessToken("A1"))
	require.NoError(t, store.SetRefreshToken("R1"))

	require.Equal(t, "A1", store.AccessToken())
	require.Equal(t, "R1", store.RefreshToken())

	// Every set writes through to the durable repo.
	stored := repo.Stored()
	require.Equal(t, "A1", stored[credentials.KeyAccessToken])
	require.Equal(t, "R1", stored[credentials.KeyRefreshToken])
}

func TestStoreLoadsDurableCopy(t *testing.T) {
	repo := repofake.NewFakeRepo()
	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))
	require.NoError(t, repo.Set(credentials.KeyRefreshToken, "R1"))

	// A fresh store over the same repo resumes the previous session.
	store := credentials.NewStore(repo)
	require.Equal(t, "A1", store.AccessToken())
	require.Equal(t, "R1", store.RefreshToken())
}

func TestStoreClear(t *testing.T) {
	repo := repofake.NewFakeRepo()
	store := credentials.NewStore(repo)
	require.NoError(t, store.SetAccessToken("A1"))
	require.NoError(t, store.SetRefreshToken("R1"))

	require.NoError(t, store.Clear())

	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
	require.Empty(t, repo.Stored())
}

func TestStoreClearDoesNotResurrect(t *testing.T) {
	repo := repofake.NewFakeRepo()
	require.NoError(t, repo.Set(credentials.KeyAccessToken, "A1"))

	store := credentials.NewStore(repo)
	require.NoError(t, store.Clear())

	// Even though the repo was never read before Clear, cleared tokens
	// must not reappear from the durable copy.
	require.Empty(t, store.AccessToken())
}

func TestStoreSetterPropagatesRepoFailure(t *testing.T) {
	repo := repofake.NewFakeRepo()
	store := credentials.NewStore(repo)
	require.NoError(t, store.SetAccessToken("A1"))

	repo.FailWith = errors.New("disk full")
	require.Error(t, store.SetRefreshToken("R1"))

	// A failed persist must not leave a half-applied in-memory value.
	repo.FailWith = nil
	require.Empty(t, store.RefreshToken())
	require.Equal(t, "A1", store.AccessToken())
}

func TestStoreAuthEndpoint(t *testing.T) {
	store := credentials.NewStore(repofake.NewFakeRepo())
	require.Empty(t, store.AuthEndpoint())

	store.SetAuthEndpoint("https://auth.example")
	require.Equal(t, "https://auth.example", store.AuthEndpoint())
}

func TestStoreIndependentTokenUpdates(t *testing.T) {
	store := credentials.NewStore(repofake.NewFakeRepo())
	require.NoError(t, store.SetAccessToken("A1"))
	require.NoError(t, store.SetRefreshToken("R1"))

	require.NoError(t, store.SetAccessToken("A2"))
	require.Equal(t, "A2", store.AccessToken())
	require.Equal(t, "R1", store.RefreshToken())
}
