package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// storeFile is the fixed namespace the sessions persist under.
const storeFile = "auth.json"

// FileStore keeps every session in one JSON file inside a state directory,
// loaded at construction and rewritten atomically on every mutation. It is
// the default backend and needs no external services.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	sessions map[string]Session
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create session state dir")
	}
	fs := &FileStore{
		path:     filepath.Join(dir, storeFile),
		sessions: make(map[string]Session),
	}
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, errors.Wrap(err, "read session file")
	}
	if err := json.Unmarshal(raw, &fs.sessions); err != nil {
		return nil, errors.Wrap(err, "decode session file")
	}
	return fs, nil
}

func (fs *FileStore) Get(_ context.Context, sid string) (Session, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	sess, ok := fs.sessions[sid]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (fs *FileStore) Set(_ context.Context, sid string, sess Session) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.sessions[sid] = sess
	return fs.persist()
}

func (fs *FileStore) Clear(_ context.Context, sid string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	sess, ok := fs.sessions[sid]
	if !ok {
		return nil
	}
	sess.Token = ""
	fs.sessions[sid] = sess
	return fs.persist()
}

// persist writes the whole map through a temp file rename. Callers hold the
// write lock.
func (fs *FileStore) persist() error {
	raw, err := json.Marshal(fs.sessions)
	if err != nil {
		return errors.Wrap(err, "encode sessions")
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "replace session file")
	}
	return nil
}
