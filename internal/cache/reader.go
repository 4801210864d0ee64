/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cache

import (
	"encoding/binary"
	"errors"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/zeebo/blake3"

	"github.com/dxlang/style/internal/diagnostics"
)

// ErrCorrupt is returned when the artefact's magic, version, or checksum
// does not match, per spec.md §6.4 and §7 (CacheCorrupt).
var ErrCorrupt = errors.New("cache: corrupt artefact")

// Cache is a read-only, memory-mapped view of a .dxc artefact. Every
// accessor copies small integers out of the mapped region; no slice into
// the mapping is ever returned from the public API (spec.md §6.4).
type Cache struct {
	data mmap.MMap
	file *os.File

	stringTableOffset uint64
	ruleTableOffset   uint64
	declTableOffset   uint64
	ruleCount         int
	declCount         int
}

// Load memory-maps path read-only and validates its header and checksum.
// On any mismatch it returns ErrCorrupt and the caller should discard the
// cache and recompile (spec.md §4.7 load contract).
func Load(path string) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	c := &Cache{data: m, file: f}
	if err := c.validate(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// LoadOrDiscard is Load, but reports a CacheCorrupt diagnostic instead of
// an error and returns (nil, false) so a caller can fall through to a full
// recompile without treating this as a fatal IoError.
func LoadOrDiscard(path string, diags *diagnostics.Collector) (*Cache, bool) {
	c, err := Load(path)
	if err != nil {
		diags.Add(diagnostics.Diagnostic{
			Kind:    diagnostics.KindCache,
			Path:    path,
			Message: err.Error(),
		})
		return nil, false
	}
	return c, true
}

func (c *Cache) validate() error {
	if len(c.data) < HeaderSize {
		return ErrCorrupt
	}
	if [4]byte(c.data[OffsetMagic:OffsetMagic+4]) != Magic {
		return ErrCorrupt
	}
	if c.data[OffsetVersion] != Version {
		return ErrCorrupt
	}

	size := binary.LittleEndian.Uint64(c.data[OffsetSize:])
	if size != uint64(len(c.data)) {
		return ErrCorrupt
	}

	c.stringTableOffset = binary.LittleEndian.Uint64(c.data[OffsetStringTable:])
	c.ruleTableOffset = binary.LittleEndian.Uint64(c.data[OffsetRuleTable:])
	c.declTableOffset = binary.LittleEndian.Uint64(c.data[OffsetDeclarationTable:])

	if c.data[OffsetFlags]&FlagChecksumPresent != 0 {
		want := make([]byte, ChecksumSize)
		copy(want, c.data[OffsetChecksum:OffsetChecksum+ChecksumSize])

		verifyBuf := make([]byte, len(c.data))
		copy(verifyBuf, c.data)
		for i := range verifyBuf[OffsetChecksum : OffsetChecksum+ChecksumSize] {
			verifyBuf[OffsetChecksum+i] = 0
		}
		got := blake3.Sum256(verifyBuf)
		if !bytesEqual(got[:], want) {
			return ErrCorrupt
		}
	}

	if c.ruleTableOffset < c.stringTableOffset || c.declTableOffset < c.ruleTableOffset || c.declTableOffset > uint64(len(c.data)) {
		return ErrCorrupt
	}
	c.ruleCount = int((c.declTableOffset - c.ruleTableOffset) / ruleRecordSize)
	c.declCount = int((uint64(len(c.data)) - c.declTableOffset) / declarationRecordSize)

	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Close unmaps the cache and closes its underlying file.
func (c *Cache) Close() error {
	if c.data != nil {
		_ = c.data.Unmap()
	}
	if c.file != nil {
		return c.file.Close()
	}
	return nil
}

// RuleCount returns the number of rule records.
func (c *Cache) RuleCount() int {
	return c.ruleCount
}

// DeclarationCount returns the number of declaration records.
func (c *Cache) DeclarationCount() int {
	return c.declCount
}

// Rule copies the i'th rule record out of the mapped region.
func (c *Cache) Rule(i int) Rule {
	off := c.ruleTableOffset + uint64(i)*ruleRecordSize
	rec := c.data[off : off+ruleRecordSize]
	return Rule{
		SelectorID:            binary.LittleEndian.Uint32(rec[0:4]),
		MediaID:               binary.LittleEndian.Uint32(rec[4:8]),
		Tier:                  rec[8],
		DeclarationCount:      binary.LittleEndian.Uint16(rec[9:11]),
		FirstDeclarationIndex: binary.LittleEndian.Uint32(rec[11:15]),
	}
}

// Declaration copies the i'th declaration record out of the mapped region.
func (c *Cache) Declaration(i int) Declaration {
	off := c.declTableOffset + uint64(i)*declarationRecordSize
	rec := c.data[off : off+declarationRecordSize]
	return Declaration{
		PropertyID: binary.LittleEndian.Uint32(rec[0:4]),
		ValueID:    binary.LittleEndian.Uint32(rec[4:8]),
		Important:  rec[8] != 0,
	}
}

// String copies the string-table entry at id out of the mapped region.
func (c *Cache) String(id uint32) string {
	off := c.stringTableOffset

	count, n := binary.Uvarint(c.data[off:])
	off += uint64(n)
	if uint64(id) >= count {
		return ""
	}

	for i := uint64(0); i < uint64(id); i++ {
		length, ln := binary.Uvarint(c.data[off:])
		off += uint64(ln) + length
	}

	length, ln := binary.Uvarint(c.data[off:])
	off += uint64(ln)
	return string(c.data[off : off+length])
}
