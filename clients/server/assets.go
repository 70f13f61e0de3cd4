// assets.go - In-memory store for uploaded overlays.
package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type asset struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Mime    string    `json:"mime"`
	Size    int       `json:"size"`
	Created time.Time `json:"created"`
	data    []byte
}

// assetManager holds uploaded overlays in memory.
type assetManager struct {
	mu     sync.RWMutex
	assets map[string]*asset
}

func newAssetManager() *assetManager {
	return &assetManager{assets: make(map[string]*asset)}
}

func (am *assetManager) add(name string, data []byte, mimeType string) *asset {
	a := &asset{
		ID:      uuid.NewString(),
		Name:    name,
		Mime:    mimeType,
		Size:    len(data),
		Created: time.Now(),
		data:    data,
	}
	am.mu.Lock()
	am.assets[a.ID] = a
	am.mu.Unlock()
	return a
}

func (am *assetManager) get(id string) (*asset, bool) {
	am.mu.RLock()
	a, ok := am.assets[id]
	am.mu.RUnlock()
	return a, ok
}

// lookup satisfies media.AssetLookup.
func (am *assetManager) lookup(id string) ([]byte, bool) {
	a, ok := am.get(id)
	if !ok {
		return nil, false
	}
	return a.data, true
}

func (am *assetManager) listAll() []*asset {
	am.mu.RLock()
	result := make([]*asset, 0, len(am.assets))
	for _, a := range am.assets {
		result = append(result, a)
	}
	am.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].Created.Before(result[j].Created)
	})
	return result
}

func (am *assetManager) remove(id string) bool {
	am.mu.Lock()
	defer am.mu.Unlock()
	if _, ok := am.assets[id]; !ok {
		return false
	}
	delete(am.assets, id)
	return true
}
