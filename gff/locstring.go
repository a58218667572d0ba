package gff

// LocString is a localized string: a reference into the central string
// table plus zero or more embedded per-language substrings.
type LocString struct {
	StrRef int32
	Subs   []Substring
}

// Substring is one embedded localization. ID encodes language and gender as
// language*2+gender, following the resource convention.
type Substring struct {
	ID   int
	Text string
}

// Sub returns the text for a substring id.
func (ls *LocString) Sub(id int) (string, bool) {
	for i := range ls.Subs {
		if ls.Subs[i].ID == id {
			return ls.Subs[i].Text, true
		}
	}
	return "", false
}

// SetSub sets the text for a substring id, adding the substring if absent.
func (ls *LocString) SetSub(id int, text string) {
	for i := range ls.Subs {
		if ls.Subs[i].ID == id {
			ls.Subs[i].Text = text
			return
		}
	}
	ls.Subs = append(ls.Subs, Substring{ID: id, Text: text})
}

func (ls *LocString) Clone() *LocString {
	if ls == nil {
		return nil
	}
	res := &LocString{StrRef: ls.StrRef}
	res.Subs = append(res.Subs, ls.Subs...)
	return res
}
