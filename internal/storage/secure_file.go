package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// SecureFileStore implements a file-based credential store with encryption.
// All entries live in a single JSON document, encrypted with AES-GCM and
// written with restricted permissions, so the access token, refresh token
// and expiry are persisted atomically.
type SecureFileStore struct {
	storeFile  string
	encryptKey []byte
	mu         sync.RWMutex
}

// NewSecureFileStore creates a new secure file-based store rooted at dir.
func NewSecureFileStore(dir string) (*SecureFileStore, error) {
	// Expand home directory if needed
	if len(dir) >= 2 && dir[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	return &SecureFileStore{
		storeFile:  filepath.Join(dir, ".credentials"),
		encryptKey: generateEncryptionKey(),
	}, nil
}

// Set persists a value under the given key.
func (s *SecureFileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.readEntries()
	entries[key] = value
	return s.writeEntries(entries)
}

// Get retrieves the value for the given key, or "" if absent.
// An unreadable or undecryptable file is treated as an empty store rather
// than an error: a credential we cannot read is a credential we do not have.
func (s *SecureFileStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.readEntries()[key], nil
}

// Remove deletes the value for the given key.
func (s *SecureFileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.readEntries()
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		if err := os.Remove(s.storeFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove credentials file: %w", err)
		}
		return nil
	}
	return s.writeEntries(entries)
}

// readEntries loads and decrypts the store document. Must be called with
// the lock held.
func (s *SecureFileStore) readEntries() map[string]string {
	entries := map[string]string{}

	data, err := os.ReadFile(s.storeFile)
	if err != nil {
		return entries
	}
	decrypted, err := s.decrypt(data)
	if err != nil {
		return entries
	}
	json.Unmarshal(decrypted, &entries)
	return entries
}

// writeEntries encrypts and persists the store document. Must be called
// with the lock held.
func (s *SecureFileStore) writeEntries(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	encrypted, err := s.encrypt(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := os.WriteFile(s.storeFile, encrypted, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// Private encryption methods

func (s *SecureFileStore) encrypt(data []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, data, nil)

	// Encode to base64 for storage
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (s *SecureFileStore) decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// generateEncryptionKey generates a machine-specific encryption key from
// hostname and user, so the credentials file is not portable between
// machines.
func generateEncryptionKey() []byte {
	hostname, _ := os.Hostname()
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME") // Windows
	}

	keyMaterial := fmt.Sprintf("geoffray-cli:%s:%s", hostname, user)

	hash := sha256.Sum256([]byte(keyMaterial))
	return hash[:]
}
