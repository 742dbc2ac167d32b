// Package store persists encoded chunks on disk, one file per chunk column.
//
// Files live under <dir>/chunks and are named c.<x>.<z>.vox after the chunk
// key. Writes go through a temporary file and a rename, so a reader never sees
// a partially written chunk.
package store

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/arloliu/voxpal/chunk"
	"github.com/arloliu/voxpal/codec"
	"github.com/arloliu/voxpal/errs"
)

const (
	chunkDir   = "chunks"
	filePrefix = "c."
	fileSuffix = ".vox"
	tempSuffix = ".tmp"
	fileMode   = 0o644
	dirMode    = 0o755
	keyParts   = 2
)

// Key identifies a chunk column by its horizontal chunk coordinates.
type Key struct {
	X, Z int32
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d)", k.X, k.Z)
}

func (k Key) fileName() string {
	return filePrefix + strconv.FormatInt(int64(k.X), 10) + "." + strconv.FormatInt(int64(k.Z), 10) + fileSuffix
}

// parseKey reverses fileName. It reports false for any other file.
func parseKey(name string) (Key, bool) {
	rest, ok := strings.CutPrefix(name, filePrefix)
	if !ok {
		return Key{}, false
	}
	rest, ok = strings.CutSuffix(rest, fileSuffix)
	if !ok {
		return Key{}, false
	}

	parts := strings.Split(rest, ".")
	if len(parts) != keyParts {
		return Key{}, false
	}
	x, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return Key{}, false
	}
	z, err := strconv.ParseInt(parts[1], 10, 32)
	if err != nil {
		return Key{}, false
	}

	return Key{X: int32(x), Z: int32(z)}, true
}

// Store reads and writes chunk blobs in a directory.
//
// A Store may be shared between goroutines, but concurrent saves of the same
// key race on the rename and the last one wins.
type Store struct {
	dir     string
	log     *slog.Logger
	encoder *codec.Encoder
	decoder *codec.Decoder
}

// New creates a Store rooted at dir, creating the chunk directory if needed.
//
// Parameters:
//   - dir: root directory
//   - log: logger for save and load events; nil uses slog.Default()
//   - opts: encoder options applied to every saved chunk
//
// Returns:
//   - *Store: the store
//   - error: invalid encoder options or a filesystem error
func New(dir string, log *slog.Logger, opts ...codec.EncoderOption) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	encoder, err := codec.NewEncoder(opts...)
	if err != nil {
		return nil, fmt.Errorf("create chunk encoder: %w", err)
	}

	path := filepath.Join(dir, chunkDir)
	if err := os.MkdirAll(path, dirMode); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", path, err)
	}

	return &Store{
		dir:     dir,
		log:     log,
		encoder: encoder,
		decoder: codec.NewDecoder(),
	}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file a chunk with the given key is stored in.
func (s *Store) Path(key Key) string {
	return filepath.Join(s.dir, chunkDir, key.fileName())
}

// Save encodes c and writes it under key, replacing any previous chunk.
func (s *Store) Save(key Key, c *chunk.Chunk) error {
	if c == nil {
		return errs.ErrNilChunk
	}

	data, err := s.encoder.Encode(c)
	if err != nil {
		return fmt.Errorf("encode chunk %s: %w", key, err)
	}

	path := s.Path(key)
	if err := atomicWrite(path, data); err != nil {
		return fmt.Errorf("save chunk %s: %w", key, err)
	}

	s.log.Debug("saved chunk",
		"key", key,
		"bytes", len(data),
		"sections", c.PopulatedCount(),
		"compression", s.encoder.Compression())

	return nil
}

// Load reads and decodes the chunk saved under key.
//
// Returns:
//   - *chunk.Chunk: the decoded chunk
//   - error: ErrChunkNotFound if nothing is saved under key, or a read or
//     decode error
func (s *Store) Load(key Key) (*chunk.Chunk, error) {
	path := s.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrChunkNotFound, key)
		}

		return nil, fmt.Errorf("read chunk %s: %w", key, err)
	}

	c, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %s: %w", key, err)
	}

	s.log.Debug("loaded chunk", "key", key, "bytes", len(data), "sections", c.PopulatedCount())

	return c, nil
}

// Exists reports whether a chunk is saved under key.
func (s *Store) Exists(key Key) bool {
	_, err := os.Stat(s.Path(key))

	return err == nil
}

// Delete removes the chunk saved under key. Deleting a missing chunk returns
// ErrChunkNotFound.
func (s *Store) Delete(key Key) error {
	if err := os.Remove(s.Path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", errs.ErrChunkNotFound, key)
		}

		return fmt.Errorf("delete chunk %s: %w", key, err)
	}

	s.log.Debug("deleted chunk", "key", key)

	return nil
}

// Keys lists the keys of every saved chunk, ordered by X then Z.
func (s *Store) Keys() ([]Key, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, chunkDir))
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}

	keys := make([]Key, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := parseKey(entry.Name()); ok {
			keys = append(keys, key)
		}
	}

	slices.SortFunc(keys, func(a, b Key) int {
		return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Z, b.Z))
	})

	return keys, nil
}

// atomicWrite writes data to a temp file next to path and renames it into place.
func atomicWrite(path string, data []byte) error {
	tmp := path + tempSuffix
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
