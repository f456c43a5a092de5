package persist

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Preferences are presentation settings kept next to the snapshot but
// outside the board state.
type Preferences struct {
	b Backing
}

func NewPreferences(b Backing) *Preferences {
	return &Preferences{b: b}
}

// Dark reports the stored theme. def is used when nothing is stored yet.
func (p *Preferences) Dark(def bool) bool {
	v, err := p.b.Get(ThemeKey)
	if err != nil || v == "" {
		return def
	}
	return v == "dark"
}

func (p *Preferences) SetDark(dark bool) error {
	v := "light"
	if dark {
		v = "dark"
	}
	return p.b.Set(ThemeKey, v)
}

// Celebrated returns the ids of achievements that were already announced
func (p *Preferences) Celebrated() []string {
	v, err := p.b.Get(CelebratedKey)
	if err != nil || v == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(v), &ids); err != nil {
		return nil
	}
	return ids
}

// MarkCelebrated adds ids to the celebrated set
func (p *Preferences) MarkCelebrated(ids ...string) error {
	current := p.Celebrated()
	for _, id := range ids {
		if !slices.Contains(current, id) {
			current = append(current, id)
		}
	}
	data, err := json.Marshal(current)
	if err != nil {
		return err
	}
	return p.b.Set(CelebratedKey, string(data))
}

// Filters loads the last board filters into dst. Missing or malformed
// values leave dst untouched.
func (p *Preferences) Filters(dst any) {
	v, err := p.b.Get(FiltersKey)
	if err != nil || v == "" {
		return
	}
	_ = json.Unmarshal([]byte(v), dst)
}

func (p *Preferences) SetFilters(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	return p.b.Set(FiltersKey, string(data))
}
