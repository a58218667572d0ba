package install

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kotormods/kpatch/gff"
	"github.com/kotormods/kpatch/ssf"
	"github.com/kotormods/kpatch/tlk"
	"github.com/kotormods/kpatch/twoda"
)

// Codecs decode and encode the binary resource formats. The engine does
// not parse resource bytes itself; callers supply codecs from whatever
// format library they use. A nil codec func makes the corresponding
// resource kind unavailable on that store.
type Codecs struct {
	DecodeTable func([]byte) (*twoda.Table, error)
	EncodeTable func(*twoda.Table) ([]byte, error)

	DecodeTree func([]byte) (*gff.Node, error)
	EncodeTree func(*gff.Node) ([]byte, error)

	DecodeStrings func([]byte) (*tlk.Table, error)
	EncodeStrings func(*tlk.Table) ([]byte, error)

	DecodeSoundset func([]byte) (*ssf.Soundset, error)
	EncodeSoundset func(*ssf.Soundset) ([]byte, error)
}

// Archive is an open container file holding named resource entries.
type Archive interface {
	Read(entry string) ([]byte, bool, error)
	Write(entry string, data []byte) error
	Close() error
}

// ArchiveOpener opens container archives by installation-relative path,
// creating them when absent.
type ArchiveOpener interface {
	Open(path string) (Archive, error)
}

// FSStore is a Store over an installation directory. Resources in archive
// destinations go through an ArchiveOpener; opened archives stay open
// across consecutive writes and are released by Close. With BackupDir
// set, the previous content of every file or archive entry is copied
// there once before its first overwrite.
type FSStore struct {
	Root      string
	Codecs    Codecs
	Archives  ArchiveOpener
	BackupDir string

	open     map[string]Archive
	backedUp map[string]bool
}

func NewFSStore(root string, codecs Codecs) *FSStore {
	return &FSStore{
		Root:     root,
		Codecs:   codecs,
		open:     map[string]Archive{},
		backedUp: map[string]bool{},
	}
}

// Close releases every archive held open by earlier writes.
func (s *FSStore) Close() error {
	var firstErr error
	for p, a := range s.open {
		if err := a.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.open, p)
	}
	return firstErr
}

func (s *FSStore) archive(path string) (Archive, error) {
	if s.Archives == nil {
		return nil, fmt.Errorf("archive destination %q but no archive opener configured", path)
	}
	if a, ok := s.open[path]; ok {
		return a, nil
	}
	a, err := s.Archives.Open(filepath.Join(s.Root, filepath.FromSlash(path)))
	if err != nil {
		return nil, err
	}
	s.open[path] = a
	return a, nil
}

func (s *FSStore) Raw(name string, dst Destination) ([]byte, bool, error) {
	if dst.IsArchive() {
		a, err := s.archive(dst.Archive)
		if err != nil {
			return nil, false, err
		}
		return a.Read(name)
	}
	d, err := os.ReadFile(s.path(name, dst))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return d, true, nil
}

func (s *FSStore) SaveRaw(name string, dst Destination, data []byte) error {
	if err := s.backup(name, dst); err != nil {
		return err
	}
	if dst.IsArchive() {
		a, err := s.archive(dst.Archive)
		if err != nil {
			return err
		}
		return a.Write(name, data)
	}
	p := s.path(name, dst)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

func (s *FSStore) path(name string, dst Destination) string {
	return filepath.Join(s.Root, filepath.FromSlash(dst.Folder), name)
}

// backup copies the resource's current content into BackupDir once per
// run. A collaborator-level safety net, not a transactional guarantee.
func (s *FSStore) backup(name string, dst Destination) error {
	if s.BackupDir == "" {
		return nil
	}
	k := key(name, dst)
	if s.backedUp[k] {
		return nil
	}
	s.backedUp[k] = true
	data, ok, err := s.Raw(name, dst)
	if err != nil || !ok {
		return err
	}
	p := filepath.Join(s.BackupDir, filepath.FromSlash(dst.String()), name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0644)
}

func (s *FSStore) Table(name string, dst Destination) (*twoda.Table, bool, error) {
	if s.Codecs.DecodeTable == nil {
		return nil, false, fmt.Errorf("no 2DA codec configured")
	}
	d, ok, err := s.Raw(name, dst)
	if err != nil || !ok {
		return nil, false, err
	}
	tb, err := s.Codecs.DecodeTable(d)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return tb, true, nil
}

func (s *FSStore) SaveTable(name string, dst Destination, tb *twoda.Table) error {
	if s.Codecs.EncodeTable == nil {
		return fmt.Errorf("no 2DA codec configured")
	}
	d, err := s.Codecs.EncodeTable(tb)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.SaveRaw(name, dst, d)
}

func (s *FSStore) Tree(name string, dst Destination) (*gff.Node, bool, error) {
	if s.Codecs.DecodeTree == nil {
		return nil, false, fmt.Errorf("no GFF codec configured")
	}
	d, ok, err := s.Raw(name, dst)
	if err != nil || !ok {
		return nil, false, err
	}
	root, err := s.Codecs.DecodeTree(d)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return root, true, nil
}

func (s *FSStore) SaveTree(name string, dst Destination, root *gff.Node) error {
	if s.Codecs.EncodeTree == nil {
		return fmt.Errorf("no GFF codec configured")
	}
	d, err := s.Codecs.EncodeTree(root)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.SaveRaw(name, dst, d)
}

func (s *FSStore) Strings(name string, dst Destination) (*tlk.Table, bool, error) {
	if s.Codecs.DecodeStrings == nil {
		return nil, false, fmt.Errorf("no TLK codec configured")
	}
	d, ok, err := s.Raw(name, dst)
	if err != nil || !ok {
		return nil, false, err
	}
	tb, err := s.Codecs.DecodeStrings(d)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return tb, true, nil
}

func (s *FSStore) SaveStrings(name string, dst Destination, tb *tlk.Table) error {
	if s.Codecs.EncodeStrings == nil {
		return fmt.Errorf("no TLK codec configured")
	}
	d, err := s.Codecs.EncodeStrings(tb)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.SaveRaw(name, dst, d)
}

func (s *FSStore) Soundset(name string, dst Destination) (*ssf.Soundset, bool, error) {
	if s.Codecs.DecodeSoundset == nil {
		return nil, false, fmt.Errorf("no SSF codec configured")
	}
	d, ok, err := s.Raw(name, dst)
	if err != nil || !ok {
		return nil, false, err
	}
	set, err := s.Codecs.DecodeSoundset(d)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", name, err)
	}
	return set, true, nil
}

func (s *FSStore) SaveSoundset(name string, dst Destination, set *ssf.Soundset) error {
	if s.Codecs.EncodeSoundset == nil {
		return fmt.Errorf("no SSF codec configured")
	}
	d, err := s.Codecs.EncodeSoundset(set)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return s.SaveRaw(name, dst, d)
}

var _ io.Closer = (*FSStore)(nil)
