package settings

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/coopco/renewdash/internal/notify"
)

// Store persists accounts and settings as a single JSON document. It
// keeps the raw bytes of the last loaded document so that fields this
// build does not model survive a save untouched.
type Store struct {
	path string

	mu   sync.Mutex
	raw  []byte
	data document
}

type document struct {
	Accounts []Account `json:"accounts"`
	Settings Settings  `json:"settings"`
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the document from disk. A missing file yields defaults.
// The notification channel list is normalized on load, deriving
// channels from the legacy notify_config when notify_channels is
// absent or empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = document{Settings: Default()}
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.raw = []byte("{}")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return fmt.Errorf("failed to parse data file: %w", err)
	}
	s.raw = raw

	settingsRaw := []byte(gjson.GetBytes(raw, "settings").Raw)
	s.data.Settings.NotifyChannels = notify.Normalize(settingsRaw)
	if s.data.Settings.NotifyConfig == nil {
		s.data.Settings.NotifyConfig = map[string]any{}
	}
	return nil
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Settings
}

// UpdateSettings replaces the settings and persists. notify_channels
// is always written; notify_config is reduced to an empty placeholder
// object for backward compatibility once channels carry the config.
func (s *Store) UpdateSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.NotifyChannels == nil {
		settings.NotifyChannels = []notify.Channel{}
	}
	settings.NotifyConfig = map[string]any{}
	s.data.Settings = settings
	return s.persist()
}

// Accounts returns a copy of the account list.
func (s *Store) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Account, len(s.data.Accounts))
	copy(out, s.data.Accounts)
	return out
}

// FindAccount returns the account with the given id.
func (s *Store) FindAccount(id string) (Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.data.Accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// AddAccount appends a new account, generating its id, and persists.
func (s *Store) AddAccount(acc Account) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc.ID = newAccountID()
	s.data.Accounts = append(s.data.Accounts, acc)
	if err := s.persist(); err != nil {
		return Account{}, err
	}
	return acc, nil
}

// UpdateAccount replaces the account with the given id and persists.
func (s *Store) UpdateAccount(id string, acc Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Accounts {
		if s.data.Accounts[i].ID == id {
			acc.ID = id
			s.data.Accounts[i] = acc
			return s.persist()
		}
	}
	return fmt.Errorf("account %q not found", id)
}

// DeleteAccount removes the account with the given id and persists.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.data.Accounts {
		if s.data.Accounts[i].ID == id {
			s.data.Accounts = append(s.data.Accounts[:i], s.data.Accounts[i+1:]...)
			return s.persist()
		}
	}
	return fmt.Errorf("account %q not found", id)
}

// persist writes the document to disk. Caller must hold s.mu. Known
// fields are marshaled fresh, then any top-level or settings key from
// the previously loaded document that this build does not model is
// copied back in before writing.
func (s *Store) persist() error {
	doc, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	doc = carryUnknown(doc, s.raw, "")
	doc = carryUnknown(doc, s.raw, "settings")

	indented := doc
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", "  "); err == nil {
		indented = buf.Bytes()
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(s.path, indented, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	s.raw = doc
	return nil
}

// carryUnknown copies keys under path in the old document that are
// missing from the new one. path "" means the top level.
func carryUnknown(newDoc, oldDoc []byte, path string) []byte {
	if len(oldDoc) == 0 {
		return newDoc
	}
	var obj gjson.Result
	if path == "" {
		obj = gjson.ParseBytes(oldDoc)
	} else {
		obj = gjson.GetBytes(oldDoc, path)
	}
	if !obj.IsObject() {
		return newDoc
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		full := key.String()
		if path != "" {
			full = path + "." + full
		}
		if !gjson.GetBytes(newDoc, full).Exists() {
			newDoc, _ = sjson.SetRawBytes(newDoc, full, []byte(value.Raw))
		}
		return true
	})
	return newDoc
}

func newAccountID() string {
	buf := make([]byte, 3)
	rand.Read(buf)
	return fmt.Sprintf("acc_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
