package credentials

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// FileRepo persists credentials as a small JSON document on disk,
// optionally sealed with XChaCha20-Poly1305. The file is written with
// 0600 permissions; the parent directory is created on first write.
type FileRepo struct {
	mu   sync.Mutex
	path string
	key  []byte // nil = plaintext file
}

// NewFileRepo creates a plaintext file-backed repo at path.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// NewEncryptedFileRepo creates a file-backed repo whose contents are
// sealed with XChaCha20-Poly1305 under the given 32-byte key.
func NewEncryptedFileRepo(path string, key []byte) (*FileRepo, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.Errorf("credentials key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &FileRepo{path: path, key: key}, nil
}

func (r *FileRepo) Get(key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *FileRepo) Set(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}
	values[key] = value
	return r.write(values)
}

func (r *FileRepo) Remove(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return r.write(values)
}

func (r *FileRepo) read() (map[string]string, error) {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read credentials file")
	}
	if r.key != nil {
		if data, err = openX(r.key, data); err != nil {
			return nil, errors.Wrap(err, "decrypt credentials file")
		}
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "parse credentials file")
	}
	return values, nil
}

func (r *FileRepo) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "encode credentials")
	}
	if r.key != nil {
		if data, err = sealX(r.key, data); err != nil {
			return errors.Wrap(err, "encrypt credentials")
		}
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "create credentials directory")
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return errors.Wrap(err, "write credentials file")
	}
	return nil
}

// sealX encrypts plaintext with XChaCha20-Poly1305, prefixing the random
// nonce to the ciphertext.
func sealX(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// openX decrypts a nonce-prefixed XChaCha20-Poly1305 ciphertext.
func openX(key, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < chacha20poly1305.NonceSizeX {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:chacha20poly1305.NonceSizeX]
	return aead.Open(nil, nonce, ciphertext[chacha20poly1305.NonceSizeX:], nil)
}
