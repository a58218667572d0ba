// Package ssf provides the in-memory representation for SSF soundset
// resources: a fixed-size array of string references indexed by sound
// event slot.
package ssf

import "fmt"

// EntryCount is the number of sound event slots in a soundset.
const EntryCount = 28

// Unassigned marks a slot with no sound.
const Unassigned int32 = -1

type Soundset struct {
	Entries [EntryCount]int32
}

func New() *Soundset {
	s := &Soundset{}
	for i := range s.Entries {
		s.Entries[i] = Unassigned
	}
	return s
}

// Set assigns a string reference to an entry slot.
func (s *Soundset) Set(index int, ref int32) error {
	if index < 0 || index >= EntryCount {
		return fmt.Errorf("soundset entry %d out of range [0,%d)", index, EntryCount)
	}
	s.Entries[index] = ref
	return nil
}

func (s *Soundset) Clone() *Soundset {
	cp := *s
	return &cp
}

// slotNames maps the conventional soundset event names to entry indices,
// matching the authoring format's spelling.
var slotNames = map[string]int{
	"Battlecry 1":      0,
	"Battlecry 2":      1,
	"Battlecry 3":      2,
	"Battlecry 4":      3,
	"Battlecry 5":      4,
	"Battlecry 6":      5,
	"Selected 1":       6,
	"Selected 2":       7,
	"Selected 3":       8,
	"Attack 1":         9,
	"Attack 2":         10,
	"Attack 3":         11,
	"Pain 1":           12,
	"Pain 2":           13,
	"Low health":       14,
	"Death":            15,
	"Critical hit":     16,
	"Target immune":    17,
	"Place mine":       18,
	"Disarm mine":      19,
	"Stealth on":       20,
	"Search":           21,
	"Pick lock start":  22,
	"Pick lock fail":   23,
	"Pick lock done":   24,
	"Leave party":      25,
	"Rejoin party":     26,
	"Poisoned":         27,
}

// SlotIndex resolves a named sound event slot to its entry index.
func SlotIndex(name string) (int, error) {
	i, ok := slotNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown soundset entry %q", name)
	}
	return i, nil
}
