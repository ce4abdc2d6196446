package library

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

// appinfo.vdf magic numbers. Version 28 added the binary data hash, version 29
// moved key names into a string table at the end of the file.
const (
	appInfoMagic27 = 0x07564427
	appInfoMagic28 = 0x07564428
	appInfoMagic29 = 0x07564429
)

// AppInfo is the part of an appinfo.vdf record kept after parsing.
type AppInfo struct {
	ID           int            `json:"id"`
	InfoState    uint32         `json:"info_state"`
	LastUpdated  time.Time      `json:"last_updated"`
	Token        uint64         `json:"token"`
	SHA1         string         `json:"sha1"`
	BinarySHA1   string         `json:"binary_sha1,omitempty"`
	ChangeNumber uint32         `json:"change_number"`
	Type         domain.AppType `json:"type"`
	Name         string         `json:"name,omitempty"`
}

// ResolveType returns the app's type from appinfo.vdf. An app that is not in the
// catalog, or an installation without a catalog, is AppTypeUnknown.
func (s *Service) ResolveType(appID int) (domain.AppType, error) {
	info, ok, err := s.AppInfo(appID)
	if err != nil {
		return domain.AppTypeUnknown, err
	}
	if !ok {
		return domain.AppTypeUnknown, nil
	}
	return info.Type, nil
}

// TypeCatalog reads appinfo.vdf once and resolves types from that snapshot, so
// classifying many apps costs a single fingerprint check.
func (s *Service) TypeCatalog() (domain.TypeResolver, error) {
	catalog, err := s.appInfoCatalog()
	if err != nil {
		return nil, err
	}
	return domain.TypeResolverFunc(func(appID int) (domain.AppType, error) {
		if info, ok := catalog[appID]; ok {
			return info.Type, nil
		}
		return domain.AppTypeUnknown, nil
	}), nil
}

// AppInfo returns the catalog record for appID.
func (s *Service) AppInfo(appID int) (AppInfo, bool, error) {
	catalog, err := s.appInfoCatalog()
	if err != nil {
		return AppInfo{}, false, err
	}
	info, ok := catalog[appID]
	return info, ok, nil
}

func (s *Service) appInfoCatalog() (map[int]AppInfo, error) {
	path := appInfoPath(s.root)
	catalog, err := s.appInfo.GetOrCompute(path, func(data []byte) (map[int]AppInfo, error) {
		return parseAppInfo(data, s.logger)
	})
	if err != nil {
		if errors.Is(err, domain.ErrFileUnavailable) && isMissing(err) {
			return map[int]AppInfo{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return catalog, nil
}

// frameReader reads the fixed-width little-endian fields of appinfo records.
type frameReader struct {
	buf []byte
	pos int
}

func (r *frameReader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, &vdf.SyntaxError{Offset: r.pos, Msg: "truncated appinfo record"}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *frameReader) uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *frameReader) uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// recordHeader is the fixed part of a record after app ID and size.
type recordHeader struct {
	InfoState    uint32
	LastUpdated  uint32
	Token        uint64
	SHA1         [20]byte
	ChangeNumber uint32
}

func parseAppInfo(data []byte, logger *slog.Logger) (map[int]AppInfo, error) {
	r := &frameReader{buf: data}

	magic, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if magic != appInfoMagic27 && magic != appInfoMagic28 && magic != appInfoMagic29 {
		return nil, &vdf.SyntaxError{Offset: 0, Msg: fmt.Sprintf("unknown appinfo magic 0x%08x", magic)}
	}
	if _, err := r.uint32(); err != nil { // universe
		return nil, err
	}

	var keys []string
	end := len(data)
	if magic == appInfoMagic29 {
		off, err := r.uint64()
		if err != nil {
			return nil, err
		}
		if off > uint64(len(data)) || int(off) < r.pos {
			return nil, &vdf.SyntaxError{Offset: r.pos - 8, Msg: "string table offset out of range"}
		}
		keys, err = readStringTable(data, int(off))
		if err != nil {
			return nil, err
		}
		end = int(off)
	}
	r.buf = data[:end]

	catalog := map[int]AppInfo{}
	for r.pos < end {
		appID, err := r.uint32()
		if err != nil {
			return nil, err
		}
		if appID == 0 {
			break
		}
		size, err := r.uint32()
		if err != nil {
			return nil, err
		}
		recordStart := r.pos
		record, err := r.take(int(size))
		if err != nil {
			return nil, err
		}

		rr := &frameReader{buf: record}
		var h recordHeader
		hb, err := rr.take(binary.Size(h))
		if err != nil {
			return nil, &vdf.SyntaxError{Offset: recordStart, Msg: "truncated appinfo record header"}
		}
		if _, err := binary.Decode(hb, binary.LittleEndian, &h); err != nil {
			return nil, &vdf.SyntaxError{Offset: recordStart, Msg: "invalid appinfo record header"}
		}
		info := AppInfo{
			ID:           int(appID),
			InfoState:    h.InfoState,
			LastUpdated:  time.Unix(int64(h.LastUpdated), 0).UTC(),
			Token:        h.Token,
			SHA1:         hex.EncodeToString(h.SHA1[:]),
			ChangeNumber: h.ChangeNumber,
		}
		if magic != appInfoMagic27 {
			b, err := rr.take(20)
			if err != nil {
				return nil, &vdf.SyntaxError{Offset: recordStart, Msg: "truncated appinfo record header"}
			}
			info.BinarySHA1 = hex.EncodeToString(b)
		}

		blob := record[rr.pos:]
		var kv *vdf.Node
		if keys != nil {
			kv, err = vdf.ParseBinaryIndexed(blob, keys)
		} else {
			kv, err = vdf.ParseBinary(blob)
		}
		if err != nil {
			logger.Warn("skipping undecodable appinfo record", "appID", appID, "error", err)
			continue
		}

		if common, ok := kv.Object("common"); ok {
			t, _ := common.GetString("type")
			info.Type = domain.ParseAppType(t)
			info.Name, _ = common.GetString("name")
		}
		catalog[info.ID] = info
	}
	return catalog, nil
}

// readStringTable decodes the v29 key table: a count followed by that many
// NUL-terminated strings.
func readStringTable(data []byte, off int) ([]string, error) {
	r := &frameReader{buf: data, pos: off}
	count, err := r.uint32()
	if err != nil {
		return nil, err
	}
	if int64(count) > int64(len(data)-r.pos) {
		return nil, &vdf.SyntaxError{Offset: off, Msg: "string table count too large"}
	}

	keys := make([]string, 0, count)
	for range count {
		start := r.pos
		i := start
		for i < len(data) && data[i] != 0 {
			i++
		}
		if i >= len(data) {
			return nil, &vdf.SyntaxError{Offset: start, Msg: "unterminated string table entry"}
		}
		keys = append(keys, string(data[start:i]))
		r.pos = i + 1
	}
	return keys, nil
}
