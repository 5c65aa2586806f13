package core

import (
	"bytes"
	"encoding/gob"
)

// NotId is the dense index of an identifier unseen during preprocessing.
// It is produced only by IndexOf and consumed by the cold-start rules of
// the model.
const NotId = -1

// Indexer maps opaque identifiers to dense zero-based indices in order of
// first appearance. Once built the mapping is frozen: lookups never extend it.
type Indexer struct {
	indices map[string]int
	ids     []string
}

// NewIndexer creates an empty indexer.
func NewIndexer() *Indexer {
	return &Indexer{
		indices: make(map[string]int),
		ids:     make([]string, 0),
	}
}

// Add returns the dense index of an identifier, assigning the next unused
// index on first appearance.
func (indexer *Indexer) Add(id string) int {
	if index, exist := indexer.indices[id]; exist {
		return index
	}
	index := len(indexer.ids)
	indexer.indices[id] = index
	indexer.ids = append(indexer.ids, id)
	return index
}

// ToIndex looks up the dense index of an identifier.
func (indexer *Indexer) ToIndex(id string) (int, bool) {
	index, exist := indexer.indices[id]
	return index, exist
}

// IndexOf looks up the dense index of an identifier, returning NotId for
// identifiers unseen during preprocessing.
func (indexer *Indexer) IndexOf(id string) int {
	if index, exist := indexer.indices[id]; exist {
		return index
	}
	return NotId
}

// ToId returns the identifier at a dense index.
func (indexer *Indexer) ToId(index int) string {
	return indexer.ids[index]
}

// Ids returns all identifiers in insertion order.
func (indexer *Indexer) Ids() []string {
	return indexer.ids
}

// Len returns the number of distinct identifiers.
func (indexer *Indexer) Len() int {
	if indexer == nil {
		return 0
	}
	return len(indexer.ids)
}

// GobEncode encodes the identifier list. The index map is rebuilt on decode.
func (indexer *Indexer) GobEncode() ([]byte, error) {
	buffer := new(bytes.Buffer)
	if err := gob.NewEncoder(buffer).Encode(indexer.ids); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// GobDecode rebuilds the indexer from an identifier list.
func (indexer *Indexer) GobDecode(data []byte) error {
	var ids []string
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&ids); err != nil {
		return err
	}
	indexer.ids = ids
	indexer.indices = make(map[string]int, len(ids))
	for index, id := range ids {
		indexer.indices[id] = index
	}
	return nil
}
