// ABOUTME: Clone Hero .setlist binary export and import
// ABOUTME: Validates chart hashes up front so no partial file is written

// Package setlist writes tier arrangements to Clone Hero's binary .setlist
// format and reads existing files back.
package setlist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"careergen/song"
)

// magic identifies a Clone Hero setlist file
var magic = []byte{0xEA, 0xEC, 0x33, 0x01}

const (
	entryPrefix byte = 0x20
	md5HexLen        = 32
)

var entrySuffix = []byte{0x64, 0x00}

// Export writes songs, in order, to a .setlist file at path. Every song is
// validated before anything touches disk: a missing chart hash aborts the
// export naming the offending song and leaves no partial file behind.
func Export(songs []song.Song, path string) error {
	for i := range songs {
		if songs[i].ChartMD5 == "" {
			return fmt.Errorf("setlist: missing chart MD5 for %q", songs[i].Name)
		}
		if len(songs[i].ChartMD5) != md5HexLen {
			return fmt.Errorf("setlist: malformed chart MD5 for %q", songs[i].Name)
		}
	}

	var buf bytes.Buffer
	buf.Write(magic)

	count := make([]byte, 4)
	binary.LittleEndian.PutUint32(count, uint32(len(songs)))
	buf.Write(count)

	for i := range songs {
		buf.WriteByte(entryPrefix)
		buf.WriteString(songs[i].ChartMD5)
		buf.Write(entrySuffix)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("setlist: write %s: %w", path, err)
	}

	return nil
}

// ExportTiers flattens tiers in order and exports the combined sequence
func ExportTiers(tiers [][]song.Song, path string) error {
	var flat []song.Song
	for _, tier := range tiers {
		flat = append(flat, tier...)
	}

	return Export(flat, path)
}

// ReadMD5s reads the chart hashes from an existing .setlist file, in order
func ReadMD5s(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("setlist: open %s: %w", path, err)
	}
	defer f.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(f, header); err != nil || !bytes.Equal(header, magic) {
		return nil, fmt.Errorf("setlist: invalid header in %s", path)
	}

	countBytes := make([]byte, 4)
	if _, err := io.ReadFull(f, countBytes); err != nil {
		return nil, fmt.Errorf("setlist: truncated count in %s", path)
	}
	count := binary.LittleEndian.Uint32(countBytes)

	md5s := make([]string, 0, count)
	entry := make([]byte, 1+md5HexLen+2)

	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(f, entry); err != nil {
			return nil, fmt.Errorf("setlist: truncated entry %d in %s", i, path)
		}
		if entry[0] != entryPrefix {
			return nil, fmt.Errorf("setlist: malformed entry %d in %s", i, path)
		}
		if !bytes.Equal(entry[1+md5HexLen:], entrySuffix) {
			return nil, fmt.Errorf("setlist: malformed entry tail %d in %s", i, path)
		}

		md5s = append(md5s, string(entry[1:1+md5HexLen]))
	}

	return md5s, nil
}
