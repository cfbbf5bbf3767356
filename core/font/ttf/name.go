package ttf

import (
	"golang.org/x/text/encoding/unicode"
)

// The name table carries human-readable strings: family and style names,
// copyright, the full font name. Strings are stored per platform/encoding/
// language; we keep the table's raw bytes and decode strings on demand,
// preferring Unicode entries.

// Name IDs of the name table, as assigned by the OpenType spec.
const (
	NameCopyright        = 0
	NameFamily           = 1
	NameSubfamily        = 2
	NameUniqueidentifier = 3
	NameFull             = 4
	NameVersion          = 5
	NamePostscript       = 6
)

type nameTable struct {
	data binarySegm
}

// parseName keeps a view of the (optional) name table. Fonts without one
// simply report empty strings.
func parseName(otf *Font) error {
	if t, ok := otf.tables[T("name")]; ok {
		otf.names = nameTable{data: t.data}
	}
	return nil
}

// Name returns the string with the given name ID, or "" if the font does
// not carry one in a Unicode-capable encoding. Among several candidates,
// Windows/Unicode entries win over Macintosh ones.
func (otf *Font) Name(nameID int) string {
	b := otf.names.data
	if b == nil {
		return ""
	}
	count, err := b.u16(2)
	if err != nil {
		return ""
	}
	stringOffset, _ := b.u16(4)
	var best []byte
	var bestScore int
	for i := 0; i < int(count); i++ {
		rec, err := b.view(6+i*12, 12)
		if err != nil {
			return ""
		}
		if int(u16(rec[6:])) != nameID {
			continue
		}
		pid, psid := u16(rec), u16(rec[2:])
		score := nameEncodingScore(pid, psid)
		if score <= bestScore {
			continue
		}
		length, offset := u16(rec[8:]), u16(rec[10:])
		s, err := b.view(int(stringOffset)+int(offset), int(length))
		if err != nil {
			continue
		}
		best, bestScore = s, score
	}
	if best == nil {
		return ""
	}
	dec := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	str, err := dec.Bytes(best)
	if err != nil {
		tracer().Debugf("name table entry %d not decodable", nameID)
		return ""
	}
	return string(str)
}

// nameEncodingScore ranks name record encodings. Only UTF-16BE encodings
// qualify; 0 disqualifies a record.
func nameEncodingScore(pid, psid uint16) int {
	switch {
	case pid == 3 && psid == 10: // Windows, UCS-4
		return 3
	case pid == 3 && psid == 1: // Windows, UCS-2
		return 2
	case pid == 0: // Unicode platform
		return 1
	}
	return 0
}

// FamilyName returns the font's family name, e.g. "Go Regular".
func (otf *Font) FamilyName() string {
	return otf.Name(NameFamily)
}

// FullName returns the font's full name, family plus subfamily.
func (otf *Font) FullName() string {
	return otf.Name(NameFull)
}
