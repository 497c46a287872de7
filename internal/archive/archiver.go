// internal/archive/archiver.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newthinker/marketbrief/internal/core"
)

// Archiver persists generated briefs as JSON documents under
// briefs/<ticker>/<timestamp>-<id>.json.
type Archiver struct {
	storage Storage
}

// NewArchiver creates an archiver over the given storage backend.
func NewArchiver(storage Storage) *Archiver {
	return &Archiver{storage: storage}
}

// Save writes the brief to the archive and returns its path.
func (a *Archiver) Save(ctx context.Context, brief *core.Brief) (string, error) {
	data, err := json.MarshalIndent(brief, "", "  ")
	if err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}

	path := briefPath(brief)
	if err := a.storage.Write(ctx, path, data); err != nil {
		return "", core.WrapError(core.ErrArchiveFailed, err)
	}
	return path, nil
}

// Load reads a brief back from the archive.
func (a *Archiver) Load(ctx context.Context, path string) (*core.Brief, error) {
	data, err := a.storage.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	var brief core.Brief
	if err := json.Unmarshal(data, &brief); err != nil {
		return nil, core.WrapError(core.ErrMalformedResponse, err)
	}
	return &brief, nil
}

// ListTicker returns archive paths for one ticker.
func (a *Archiver) ListTicker(ctx context.Context, ticker string) ([]string, error) {
	return a.storage.List(ctx, fmt.Sprintf("briefs/%s", ticker))
}

func briefPath(brief *core.Brief) string {
	return fmt.Sprintf("briefs/%s/%s-%s.json",
		brief.Ticker,
		brief.GeneratedAt.UTC().Format("20060102T150405"),
		brief.ID,
	)
}
