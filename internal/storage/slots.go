// Package storage persists players in a flat directory, one JSON record
// (save slot) per player name.
package storage

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/quincy/internal/model"
)

// SlotExt is the file extension of a save slot.
const SlotExt = ".txt"

// RecordVersion is the current save record format.
const RecordVersion = 1

var (
	// ErrIO: слот нельзя прочитать или записать.
	ErrIO = errors.New("storage io failure")
	// ErrDecode: запись повреждена или несовместима.
	ErrDecode = errors.New("storage decode failure")
	// ErrInvalidName: имя не может быть ключом слота.
	ErrInvalidName = errors.New("invalid slot name")
)

// record is the on-disk envelope around the player document.
// Checksum is the hex BLAKE2b-256 of the Player bytes.
type record struct {
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	Player   json.RawMessage `json:"player"`
}

// Store: хранилище слотов сохранения в одной директории.
// No locking: one session, one flow of control.
type Store struct {
	root string
}

// NewStore creates a store rooted at dir. Call EnsureRoot before use.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the storage directory.
func (s *Store) Root() string {
	return s.root
}

// EnsureRoot creates the storage directory if it does not exist.
// Idempotent.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating storage root %s: %w: %w", s.root, ErrIO, err)
	}
	return nil
}

// Path returns the slot file path for a player name.
func (s *Store) Path(name string) (string, error) {
	name = strings.TrimSuffix(name, SlotExt)
	if err := validateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name+SlotExt), nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("slot name is empty: %w", ErrInvalidName)
	}
	// Dot files are reserved for temp slots and hidden from List.
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("slot name %q starts with a dot: %w", name, ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("slot name %q contains a path separator: %w", name, ErrInvalidName)
	}
	return nil
}

// Save записывает игрока в слот с его именем, перезаписывая прежнюю запись.
// The write goes to a temp file that is renamed over the slot, so a failed
// save leaves the previous record intact.
func (s *Store) Save(p *model.Player) error {
	path, err := s.Path(p.Name())
	if err != nil {
		return err
	}

	data, err := Encode(p)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, ".slot-*")
	if err != nil {
		return fmt.Errorf("saving %q: %w: %w", p.Name(), ErrIO, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %q: %w: %w", p.Name(), ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %q: %w: %w", p.Name(), ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %q: %w: %w", p.Name(), ErrIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing slot %s: %w: %w", path, ErrIO, err)
	}

	slog.Info("player saved", "player", p.Name(), "path", path, "bytes", len(data))
	return nil
}

// Load читает слот и восстанавливает игрока.
// name may carry the slot extension ("Quincy" and "Quincy.txt" are the same slot).
func (s *Store) Load(name string) (*model.Player, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w: %w", path, ErrIO, err)
	}

	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading slot %s: %w", path, err)
	}

	slog.Info("player loaded", "player", p.Name(), "path", path)
	return p, nil
}

// Exists reports whether a slot for name is present.
func (s *Store) Exists(name string) bool {
	path, err := s.Path(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// List returns the names of all slots, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.root, ErrIO, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SlotExt) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), SlotExt))
	}
	slices.Sort(names)
	return names, nil
}

// Encode serializes a player into a versioned, checksummed record.
func Encode(p *model.Player) ([]byte, error) {
	body, err := json.Marshal(p.State())
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w: %w", p.Name(), ErrDecode, err)
	}
	rec := record{
		Version:  RecordVersion,
		Checksum: checksum(body),
		Player:   body,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding record %q: %w: %w", p.Name(), ErrDecode, err)
	}
	return data, nil
}

// Decode parses a record produced by Encode.
// A bare player document without the envelope (written by older versions of
// the game) is accepted as well.
func Decode(data []byte) (*model.Player, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing record: %w: %w", ErrDecode, err)
	}

	body := data
	if rec.Player != nil {
		if rec.Version != RecordVersion {
			return nil, fmt.Errorf("record version %d (want %d): %w", rec.Version, RecordVersion, ErrDecode)
		}
		// The checksum covers the compact form; the record on disk is indented.
		var compact bytes.Buffer
		if err := json.Compact(&compact, rec.Player); err != nil {
			return nil, fmt.Errorf("compacting player: %w: %w", ErrDecode, err)
		}
		body = compact.Bytes()
		if got := checksum(body); got != rec.Checksum {
			return nil, fmt.Errorf("checksum mismatch %s != %s: %w", got, rec.Checksum, ErrDecode)
		}
	}

	var state model.PlayerState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("parsing player: %w: %w", ErrDecode, err)
	}
	if state.Name == "" {
		return nil, fmt.Errorf("player record has no name: %w", ErrDecode)
	}
	if !state.Stats.Valid() {
		return nil, fmt.Errorf("player %q has negative stats %s: %w", state.Name, state.Stats, ErrDecode)
	}
	return model.RestorePlayer(state), nil
}

func checksum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
