package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"event-signup/data/models"
)

const (
	accountsFileName = "accounts.json"
	eventsFileName   = "events.json"
)

// FileRepo stores each collection as a single JSON document on disk:
// accounts.json maps username to account record, events.json carries the
// event records plus the monotonic id counter. Every mutation rewrites the
// whole collection file; a missing file reads as an empty collection.
//
// The mutex serializes writers within this process only. Two processes
// sharing a data directory can still lose updates to each other, which is
// an accepted limitation of the file backend.
type FileRepo struct {
	mu           sync.Mutex
	accountsPath string
	eventsPath   string
}

func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return &FileRepo{
		accountsPath: filepath.Join(dir, accountsFileName),
		eventsPath:   filepath.Join(dir, eventsFileName),
	}, nil
}

// eventsDoc is the on-disk shape of the events collection. NextID is the key
// the next created event receives; it only ever grows, so deleting an event
// never frees its key for reuse.
type eventsDoc struct {
	NextID int64                    `json:"next_id"`
	Events map[string]*models.Event `json:"events"`
}

func (fr *FileRepo) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	accounts, err := fr.loadAccounts()
	if err != nil {
		return nil, err
	}
	return accounts[username], nil
}

func (fr *FileRepo) PutAccount(ctx context.Context, a *models.Account) error {
	if err := models.ValidateRecord(a); err != nil {
		return err
	}

	fr.mu.Lock()
	defer fr.mu.Unlock()

	accounts, err := fr.loadAccounts()
	if err != nil {
		return err
	}
	accounts[a.Username] = a
	return fr.saveJSON(fr.accountsPath, accounts)
}

func (fr *FileRepo) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	doc, err := fr.loadEvents()
	if err != nil {
		return nil, err
	}
	return doc.Events[id], nil
}

func (fr *FileRepo) PutEvent(ctx context.Context, e *models.Event) error {
	// validate before touching the counter, so a rejected record never
	// walks away holding a key
	if err := models.ValidateRecord(e); err != nil {
		return err
	}

	fr.mu.Lock()
	defer fr.mu.Unlock()

	doc, err := fr.loadEvents()
	if err != nil {
		return err
	}

	if e.ID == "" {
		e.SetKey(strconv.FormatInt(doc.NextID, 10))
		doc.NextID++
	}

	doc.Events[e.ID] = e
	return fr.saveJSON(fr.eventsPath, doc)
}

func (fr *FileRepo) DeleteEvent(ctx context.Context, id string) error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	doc, err := fr.loadEvents()
	if err != nil {
		return err
	}

	if _, ok := doc.Events[id]; !ok {
		return ErrNotFound
	}

	delete(doc.Events, id)
	return fr.saveJSON(fr.eventsPath, doc)
}

func (fr *FileRepo) ListEvents(ctx context.Context) ([]models.Event, error) {
	return fr.selectEvents(func(models.Event) bool { return true })
}

func (fr *FileRepo) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	q := strings.ToLower(query)
	return fr.selectEvents(func(e models.Event) bool {
		return strings.Contains(strings.ToLower(e.Name), q)
	})
}

func (fr *FileRepo) EventsByOrganizer(ctx context.Context, username string) ([]models.Event, error) {
	return fr.selectEvents(func(e models.Event) bool {
		return e.Organizer == username
	})
}

func (fr *FileRepo) UpcomingEvents(ctx context.Context, from time.Time) ([]models.Event, error) {
	day := from.Format("2006-01-02")
	return fr.selectEvents(func(e models.Event) bool {
		// ISO dates order lexicographically.
		return e.Date >= day
	})
}

func (fr *FileRepo) selectEvents(keep func(models.Event) bool) ([]models.Event, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	doc, err := fr.loadEvents()
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(doc.Events))
	for _, e := range doc.Events {
		if keep(*e) {
			events = append(events, *e)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		a, _ := strconv.ParseInt(events[i].ID, 10, 64)
		b, _ := strconv.ParseInt(events[j].ID, 10, 64)
		return a < b
	})
	return events, nil
}

func (fr *FileRepo) loadAccounts() (map[string]*models.Account, error) {
	accounts := map[string]*models.Account{}
	if err := fr.loadJSON(fr.accountsPath, &accounts); err != nil {
		return nil, err
	}

	for key, a := range accounts {
		a.SetKey(key)
		if err := models.ValidateRecord(a); err != nil {
			return nil, fmt.Errorf("account %q: %w", key, err)
		}
	}
	return accounts, nil
}

func (fr *FileRepo) loadEvents() (*eventsDoc, error) {
	doc := &eventsDoc{NextID: 1, Events: map[string]*models.Event{}}
	if err := fr.loadJSON(fr.eventsPath, doc); err != nil {
		return nil, err
	}
	if doc.Events == nil {
		doc.Events = map[string]*models.Event{}
	}
	if doc.NextID < 1 {
		doc.NextID = 1
	}

	for key, e := range doc.Events {
		e.SetKey(key)
		if err := models.ValidateRecord(e); err != nil {
			return nil, fmt.Errorf("event %q: %w", key, err)
		}
	}
	return doc, nil
}

// loadJSON decodes a collection file into target. A file that does not
// exist yet is an empty collection, not an error; a file that exists but
// does not decode is a real fault and is reported as one.
func (fr *FileRepo) loadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// saveJSON rewrites a collection file in full, via a temp file and rename so
// a crashed writer cannot leave a truncated document behind.
func (fr *FileRepo) saveJSON(path string, source interface{}) error {
	data, err := json.MarshalIndent(source, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
