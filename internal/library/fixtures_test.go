package library

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// kvBuilder builds binary KeyValues blobs. With a non-nil keys table, names are
// written as table indices (appinfo v29).
type kvBuilder struct {
	buf  bytes.Buffer
	keys *[]string
}

func (b *kvBuilder) name(s string) {
	if b.keys == nil {
		b.buf.WriteString(s)
		b.buf.WriteByte(0)
		return
	}
	for i, k := range *b.keys {
		if k == s {
			binary.Write(&b.buf, binary.LittleEndian, uint32(i))
			return
		}
	}
	*b.keys = append(*b.keys, s)
	binary.Write(&b.buf, binary.LittleEndian, uint32(len(*b.keys)-1))
}

func (b *kvBuilder) obj(name string) *kvBuilder {
	b.buf.WriteByte(0x00)
	b.name(name)
	return b
}

func (b *kvBuilder) str(name, v string) *kvBuilder {
	b.buf.WriteByte(0x01)
	b.name(name)
	b.buf.WriteString(v)
	b.buf.WriteByte(0)
	return b
}

func (b *kvBuilder) i32(name string, v int32) *kvBuilder {
	b.buf.WriteByte(0x02)
	b.name(name)
	binary.Write(&b.buf, binary.LittleEndian, v)
	return b
}

func (b *kvBuilder) end() *kvBuilder {
	b.buf.WriteByte(0x08)
	return b
}

func (b *kvBuilder) bytes() []byte { return b.buf.Bytes() }

type appInfoRecord struct {
	id   uint32
	blob func(keys *[]string) []byte
}

func commonBlob(typ, name string) func(keys *[]string) []byte {
	return func(keys *[]string) []byte {
		b := &kvBuilder{keys: keys}
		b.obj("appinfo").
			obj("common").str("name", name).str("type", typ).end().
			end()
		return b.bytes()
	}
}

// buildAppInfo writes an appinfo.vdf image for the given magic.
func buildAppInfo(magic uint32, records ...appInfoRecord) []byte {
	var out bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&out, le, magic)
	binary.Write(&out, le, uint32(1)) // universe

	var keys *[]string
	tableOffsetAt := -1
	if magic == appInfoMagic29 {
		keys = &[]string{}
		tableOffsetAt = out.Len()
		binary.Write(&out, le, int64(0))
	}

	for _, r := range records {
		blob := r.blob(keys)
		var rec bytes.Buffer
		binary.Write(&rec, le, uint32(2))          // info state
		binary.Write(&rec, le, uint32(1700000000)) // last updated
		binary.Write(&rec, le, uint64(0xABCD))     // token
		rec.Write(bytes.Repeat([]byte{0x11}, 20))  // sha1
		binary.Write(&rec, le, uint32(42))         // change number
		if magic != appInfoMagic27 {
			rec.Write(bytes.Repeat([]byte{0x22}, 20)) // binary sha1
		}
		rec.Write(blob)

		binary.Write(&out, le, r.id)
		binary.Write(&out, le, uint32(rec.Len()))
		out.Write(rec.Bytes())
	}
	binary.Write(&out, le, uint32(0))

	if keys != nil {
		offset := out.Len()
		binary.Write(&out, le, uint32(len(*keys)))
		for _, k := range *keys {
			out.WriteString(k)
			out.WriteByte(0)
		}
		data := out.Bytes()
		le.PutUint64(data[tableOffsetAt:], uint64(offset))
		return data
	}
	return out.Bytes()
}

// steamTree lays out a fake install root.
type steamTree struct {
	t    *testing.T
	root string
}

func newSteamTree(t *testing.T) *steamTree {
	return &steamTree{t: t, root: t.TempDir()}
}

func (s *steamTree) write(rel string, data []byte) string {
	s.t.Helper()
	path := filepath.Join(s.root, filepath.FromSlash(rel))
	require.NoError(s.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(s.t, os.WriteFile(path, data, 0o644))
	return path
}

func (s *steamTree) writeText(rel, text string) string {
	return s.write(rel, []byte(text))
}

func (s *steamTree) libraryFolders(apps ...string) {
	body := ""
	for _, a := range apps {
		body += "\t\t\t\"" + a + "\"\t\t\"1024\"\n"
	}
	s.writeText("steamapps/libraryfolders.vdf", `"libraryfolders"
{
	"contentstatsid"		"-123"
	"0"
	{
		"path"		"`+filepath.ToSlash(s.root)+`"
		"label"		""
		"contentid"		"6093224947011413516"
		"totalsize"		"0"
		"update_clean_bytes_tally"		"79799"
		"time_last_update_verified"		"1700000000"
		"apps"
		{
`+body+`		}
	}
}
`)
}
