package crypto

import (
	"io/fs"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys billy.Filesystem, name, content string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll("/keys", 0o755))
	require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o600))
}

func TestReadKeyFile(t *testing.T) {
	fsys := memfs.New()
	writeFile(t, fsys, "/keys/alice.json", `{"account_id":"alice.testnet","public_key":"ed25519:pub","private_key":"X"}`)

	keyFile, err := ReadKeyFile(fsys, "/keys/alice.json")
	require.NoError(t, err)
	assert.Equal(t, "X", keyFile.PrivateKey)
	assert.Equal(t, "alice.testnet", keyFile.AccountID)
	assert.Equal(t, "ed25519:pub", keyFile.PublicKey)
}

func TestReadKeyFileSkipsBOM(t *testing.T) {
	fsys := memfs.New()
	writeFile(t, fsys, "/keys/bob.json", "\xEF\xBB\xBF"+`{"private_key":"Y"}`)

	keyFile, err := ReadKeyFile(fsys, "/keys/bob.json")
	require.NoError(t, err)
	assert.Equal(t, "Y", keyFile.PrivateKey)
}

func TestReadKeyFileErrors(t *testing.T) {
	fsys := memfs.New()
	writeFile(t, fsys, "/keys/empty.json", "")
	writeFile(t, fsys, "/keys/garbage.json", "not json")
	writeFile(t, fsys, "/keys/nokey.json", `{"account_id":"carol"}`)
	writeFile(t, fsys, "/keys/wrongtype.json", `{"private_key":42}`)

	_, err := ReadKeyFile(fsys, "/keys/missing.json")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = ReadKeyFile(fsys, "/keys/empty.json")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadKeyFile(fsys, "/keys/garbage.json")
	assert.ErrorContains(t, err, "failed to unmarshal key file")

	_, err = ReadKeyFile(fsys, "/keys/nokey.json")
	assert.ErrorIs(t, err, ErrMissingPrivateKey)

	_, err = ReadKeyFile(fsys, "/keys/wrongtype.json")
	assert.Error(t, err)

	_, err = ReadKeyFile(fsys, "/keys")
	assert.ErrorIs(t, err, ErrNotAFile)
}
