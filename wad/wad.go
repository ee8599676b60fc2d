// Package wad reads the directory-based binary archives that levels ship
// in. An archive is a flat sequence of named byte blobs ("lumps") addressed
// through a directory at the end of the file; zero-size lumps act as markers
// that group the lumps following them.
package wad

import (
	"encoding/binary"
	"log"
	"os"

	"github.com/mirge/wadview/utils"
)

const (
	HeaderSize = 12
	EntrySize  = 16
	NameLen    = 8
)

// Type tells internal archives from patch archives. It is reported only; it
// changes neither parsing nor lookup.
type Type int

const (
	Unloaded Type = iota
	Internal
	Patch
)

func (t Type) String() string {
	switch t {
	case Internal:
		return "IWAD"
	case Patch:
		return "PWAD"
	}
	return "unloaded"
}

// Lump is a named blob from the archive directory. A zero-length Data slice
// marks a virtual lump.
type Lump struct {
	Name string
	Data []byte
}

// Records validates that the lump splits evenly into records of the given
// size and returns their count.
func (l *Lump) Records(recordSize int) (int, error) {
	if recordSize <= 0 || len(l.Data)%recordSize != 0 {
		return 0, newError(BadLumpInterpret,
			"lump %q size 0x%x is not a multiple of record size %d", l.Name, len(l.Data), recordSize)
	}
	return len(l.Data) / recordSize, nil
}

// Record returns the raw bytes of record i.
func (l *Lump) Record(recordSize, i int) []byte {
	return l.Data[i*recordSize : (i+1)*recordSize]
}

type header struct {
	typ       Type
	numLumps  int32
	dirOffset int32
}

type entry struct {
	Offset int32
	Size   int32
	Name   string
}

func unmarshalEntry(buf []byte) entry {
	return entry{
		Offset: int32(binary.LittleEndian.Uint32(buf[0:4])),
		Size:   int32(binary.LittleEndian.Uint32(buf[4:8])),
		Name:   utils.BytesToString(buf[8:16]),
	}
}

func marshalEntry(e *entry) []byte {
	buf := make([]byte, EntrySize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(e.Offset))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(e.Size))
	copy(buf[8:16], utils.StringToBytesBuffer(e.Name, NameLen))
	return buf
}

// Archive holds every lump of an opened archive file in memory plus the
// first-occurrence index used by Find.
type Archive struct {
	typ        Type
	lumps      []Lump
	firstIndex map[string]int
	loaded     bool
}

// Open reads and parses the archive at path. The whole file is loaded; the
// descriptor is not kept open.
func Open(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(err, FileNotFound, "cannot open archive %q", path)
	}

	a := &Archive{}
	if err := a.parse(data); err != nil {
		return nil, err
	}
	a.loaded = true
	log.Printf("[wad] Loaded %q: %v, %d lumps", path, a.typ, len(a.lumps))
	return a, nil
}

func (a *Archive) parse(data []byte) error {
	hdr, err := parseHeader(data)
	if err != nil {
		return err
	}
	a.typ = hdr.typ

	dir, err := parseDirectory(data, hdr)
	if err != nil {
		return err
	}

	a.lumps = make([]Lump, 0, len(dir))
	a.firstIndex = make(map[string]int, len(dir))
	for _, e := range dir {
		lump, err := lumpFromEntry(data, &e)
		if err != nil {
			return err
		}
		if _, seen := a.firstIndex[lump.Name]; !seen {
			a.firstIndex[lump.Name] = len(a.lumps)
		}
		a.lumps = append(a.lumps, lump)
	}
	return nil
}

func parseHeader(data []byte) (header, error) {
	var hdr header
	if len(data) < HeaderSize {
		return hdr, newError(InvalidHeader, "file is smaller than the %d byte header", HeaderSize)
	}
	switch string(data[0:4]) {
	case "IWAD":
		hdr.typ = Internal
	case "PWAD":
		hdr.typ = Patch
	default:
		return hdr, newError(InvalidHeader, "unknown archive tag %q", string(data[0:4]))
	}
	hdr.numLumps = int32(binary.LittleEndian.Uint32(data[4:8]))
	hdr.dirOffset = int32(binary.LittleEndian.Uint32(data[8:12]))
	if hdr.numLumps < 0 {
		return hdr, newError(InvalidHeader, "negative lump count %d", hdr.numLumps)
	}
	if hdr.dirOffset < 0 {
		return hdr, newError(InvalidHeader, "negative directory offset %d", hdr.dirOffset)
	}
	return hdr, nil
}

func parseDirectory(data []byte, hdr header) ([]entry, error) {
	end := int64(hdr.dirOffset) + int64(hdr.numLumps)*EntrySize
	if end > int64(len(data)) {
		return nil, newError(InvalidDirectory,
			"directory of %d entries at 0x%x runs past end of file", hdr.numLumps, hdr.dirOffset)
	}
	dir := make([]entry, 0, hdr.numLumps)
	for i := int32(0); i < hdr.numLumps; i++ {
		off := int64(hdr.dirOffset) + int64(i)*EntrySize
		dir = append(dir, unmarshalEntry(data[off:off+EntrySize]))
	}
	return dir, nil
}

func lumpFromEntry(data []byte, e *entry) (Lump, error) {
	if e.Offset < 0 {
		return Lump{}, newError(InvalidDirectory, "lump %q has negative offset %d", e.Name, e.Offset)
	}
	if e.Size < 0 {
		return Lump{}, newError(InvalidDirectory, "lump %q has negative size %d", e.Name, e.Size)
	}
	lump := Lump{Name: e.Name}
	if e.Size == 0 {
		// virtual marker
		return lump, nil
	}
	end := int64(e.Offset) + int64(e.Size)
	if end > int64(len(data)) {
		return Lump{}, newError(InvalidDirectory,
			"lump %q data [0x%x:0x%x] runs past end of file", e.Name, e.Offset, end)
	}
	lump.Data = make([]byte, e.Size)
	copy(lump.Data, data[e.Offset:end])
	return lump, nil
}

// Close releases all lump data. Idempotent; a closed archive only fails
// lookups, it does not crash.
func (a *Archive) Close() {
	a.loaded = false
	a.typ = Unloaded
	a.lumps = nil
	a.firstIndex = nil
}

func (a *Archive) IsOpen() bool { return a.loaded }

func (a *Archive) Type() Type { return a.typ }

func (a *Archive) NumLumps() int { return len(a.lumps) }

// Lumps returns the lumps in directory order.
func (a *Archive) Lumps() []Lump { return a.lumps }

// Find resolves a chain of lump names: the first name is looked up at its
// first occurrence, every following name is searched from that position
// onward. Find("E1M1", "VERTEXES") is the vertex lump of map E1M1.
func (a *Archive) Find(name string, next ...string) (*Lump, error) {
	if !a.loaded {
		return nil, newError(LumpNotFound, "lookup %q on a closed archive", name)
	}
	start, ok := a.firstIndex[name]
	if !ok {
		return nil, newError(LumpNotFound, "no lump named %q", name)
	}
	for _, n := range next {
		found := -1
		for i := start; i < len(a.lumps); i++ {
			if a.lumps[i].Name == n {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, newError(LumpNotFound, "no lump named %q after %q", n, a.lumps[start].Name)
		}
		start = found
	}
	return &a.lumps[start], nil
}
