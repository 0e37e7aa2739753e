package persist

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/tartampluch/dunbar/internal/config"
	"github.com/tartampluch/dunbar/internal/store"
)

// KV is the persistence port: load/save opaque bytes by key. Backends may
// be a local file tree, browser-like storage or an in-memory test double.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileKV stores each key as a file under a base directory on an afero
// filesystem. Saves go through a temp file and a rename so a crash never
// leaves a half-written payload behind.
type FileKV struct {
	Fs   afero.Fs
	Base string
}

// NewFileKV creates a file-backed store rooted at base.
func NewFileKV(fs afero.Fs, base string) *FileKV {
	return &FileKV{Fs: fs, Base: base}
}

func (kv *FileKV) path(key string) string {
	return filepath.Join(kv.Base, key)
}

func (kv *FileKV) Load(key string) ([]byte, error) {
	data, err := afero.ReadFile(kv.Fs, kv.path(key))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDataRead, err)
	}
	return data, nil
}

func (kv *FileKV) Save(key string, data []byte) error {
	if kv.Base != "" {
		if err := kv.Fs.MkdirAll(kv.Base, config.DirPermUserRWX); err != nil {
			return fmt.Errorf("%s: %w", config.ErrDataWrite, err)
		}
	}
	target := kv.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(kv.Fs, tmp, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrDataWrite, err)
	}
	if err := kv.Fs.Rename(tmp, target); err != nil {
		_ = kv.Fs.Remove(tmp)
		return fmt.Errorf("%s: %w", config.ErrDataRename, err)
	}
	return nil
}

// SaveState encodes and writes a snapshot. Failures are reported but the
// in-memory state stays authoritative; callers keep operating.
func SaveState(kv KV, key string, st store.State, now time.Time) error {
	log := slog.With(config.LogKeyComponent, config.CompPersist)
	data, err := Encode(st, now)
	if err != nil {
		log.Warn(config.MsgSaveFailed, config.LogKeyError, err)
		return err
	}
	if err := kv.Save(key, data); err != nil {
		log.Warn(config.MsgSaveFailed, config.LogKeyError, err)
		return err
	}
	log.Info(config.MsgStateSaved, config.LogKeyFile, key, config.LogKeyFriends, len(st.Friends))
	return nil
}

// LoadState reads and decodes a payload into a normalized state. A missing
// file is not an error to hide: the raw error comes back and the caller
// decides (a fresh start typically ignores os.ErrNotExist).
func LoadState(kv KV, key string) (store.State, error) {
	log := slog.With(config.LogKeyComponent, config.CompPersist)
	data, err := kv.Load(key)
	if err != nil {
		return store.NewState(), err
	}
	st, err := Decode(data)
	if err != nil {
		log.Warn(config.MsgImportRejected, config.LogKeyError, err)
		return store.NewState(), err
	}
	log.Info(config.MsgStateLoaded, config.LogKeyFile, key, config.LogKeyFriends, len(st.Friends))
	return st, nil
}

// IsNotExist reports whether a load failed only because nothing was saved
// yet.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
