package install

import (
	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/ssf"
	"github.com/kotormods/kpatch/tlk"
	"github.com/kotormods/kpatch/twoda"
)

// Store gives the engine access to resources in parsed form. Decoding and
// encoding the binary resource formats is the store's concern, not the
// engine's; the engine only ever sees the in-memory models.
//
// Lookups return (value, false, nil) when the resource is not present at
// the destination. The patch payload is itself a Store, addressed with the
// zero Destination.
type Store interface {
	Table(name string, dst Destination) (*twoda.Table, bool, error)
	SaveTable(name string, dst Destination, tb *twoda.Table) error

	Tree(name string, dst Destination) (*gff.Node, bool, error)
	SaveTree(name string, dst Destination, root *gff.Node) error

	Strings(name string, dst Destination) (*tlk.Table, bool, error)
	SaveStrings(name string, dst Destination, tb *tlk.Table) error

	Soundset(name string, dst Destination) (*ssf.Soundset, bool, error)
	SaveSoundset(name string, dst Destination, s *ssf.Soundset) error

	Raw(name string, dst Destination) ([]byte, bool, error)
	SaveRaw(name string, dst Destination, data []byte) error
}

// MemStore is an in-memory Store, the reference implementation used by
// tests and by callers that handle persistence themselves.
type MemStore struct {
	tables    map[string]*twoda.Table
	trees     map[string]*gff.Node
	strings   map[string]*tlk.Table
	soundsets map[string]*ssf.Soundset
	raw       map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{
		tables:    map[string]*twoda.Table{},
		trees:     map[string]*gff.Node{},
		strings:   map[string]*tlk.Table{},
		soundsets: map[string]*ssf.Soundset{},
		raw:       map[string][]byte{},
	}
}

func key(name string, dst Destination) string {
	return dst.String() + "\x00" + name
}

func (m *MemStore) Table(name string, dst Destination) (*twoda.Table, bool, error) {
	tb, ok := m.tables[key(name, dst)]
	return tb, ok, nil
}

func (m *MemStore) SaveTable(name string, dst Destination, tb *twoda.Table) error {
	m.tables[key(name, dst)] = tb
	return nil
}

func (m *MemStore) Tree(name string, dst Destination) (*gff.Node, bool, error) {
	root, ok := m.trees[key(name, dst)]
	return root, ok, nil
}

func (m *MemStore) SaveTree(name string, dst Destination, root *gff.Node) error {
	m.trees[key(name, dst)] = root
	return nil
}

func (m *MemStore) Strings(name string, dst Destination) (*tlk.Table, bool, error) {
	tb, ok := m.strings[key(name, dst)]
	return tb, ok, nil
}

func (m *MemStore) SaveStrings(name string, dst Destination, tb *tlk.Table) error {
	m.strings[key(name, dst)] = tb
	return nil
}

func (m *MemStore) Soundset(name string, dst Destination) (*ssf.Soundset, bool, error) {
	s, ok := m.soundsets[key(name, dst)]
	return s, ok, nil
}

func (m *MemStore) SaveSoundset(name string, dst Destination, s *ssf.Soundset) error {
	m.soundsets[key(name, dst)] = s
	return nil
}

func (m *MemStore) Raw(name string, dst Destination) ([]byte, bool, error) {
	d, ok := m.raw[key(name, dst)]
	return d, ok, nil
}

func (m *MemStore) SaveRaw(name string, dst Destination, data []byte) error {
	m.raw[key(name, dst)] = data
	return nil
}
