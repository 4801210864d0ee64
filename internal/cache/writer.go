/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package cache

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// Builder accumulates a deduplicated string table, rule table, and
// declaration table, then serialises them to the bit-exact B-CSS layout.
type Builder struct {
	strings      []string
	stringIdx    map[string]uint32
	rules        []Rule
	declarations []Declaration
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{stringIdx: make(map[string]uint32)}
}

// Intern returns s's string-table index, adding it if not already present.
func (b *Builder) Intern(s string) uint32 {
	if id, ok := b.stringIdx[s]; ok {
		return id
	}
	id := uint32(len(b.strings))
	b.strings = append(b.strings, s)
	b.stringIdx[s] = id
	return id
}

// AddRule appends a rule record along with its declaration records,
// returning nothing: callers build rules via Intern + AddRule in the order
// the assembler emits them, which is what gives Build byte-identical
// output for a fixed input (spec.md testable property 4).
func (b *Builder) AddRule(selectorID, mediaID uint32, tier uint8, decls []Declaration) {
	first := uint32(len(b.declarations))
	b.declarations = append(b.declarations, decls...)
	b.rules = append(b.rules, Rule{
		SelectorID:            selectorID,
		MediaID:               mediaID,
		Tier:                  tier,
		DeclarationCount:      uint16(len(decls)),
		FirstDeclarationIndex: first,
	})
}

// Build serialises the accumulated tables into the full .dxc byte image,
// including the BLAKE3 checksum computed over the whole artefact with the
// checksum region itself held at zero (spec.md §6.4).
func (b *Builder) Build() []byte {
	stringTable := encodeStringTable(b.strings)
	ruleTable := encodeRuleTable(b.rules)
	declTable := encodeDeclarationTable(b.declarations)

	stringTableOffset := uint64(HeaderSize)
	ruleTableOffset := stringTableOffset + uint64(len(stringTable))
	declTableOffset := ruleTableOffset + uint64(len(ruleTable))
	totalSize := declTableOffset + uint64(len(declTable))

	out := make([]byte, totalSize)
	copy(out[OffsetMagic:], Magic[:])
	out[OffsetVersion] = Version
	out[OffsetFlags] = FlagChecksumPresent
	binary.LittleEndian.PutUint64(out[OffsetSize:], totalSize)
	binary.LittleEndian.PutUint64(out[OffsetStringTable:], stringTableOffset)
	binary.LittleEndian.PutUint64(out[OffsetRuleTable:], ruleTableOffset)
	binary.LittleEndian.PutUint64(out[OffsetDeclarationTable:], declTableOffset)
	copy(out[stringTableOffset:], stringTable)
	copy(out[ruleTableOffset:], ruleTable)
	copy(out[declTableOffset:], declTable)

	// Checksum region (out[OffsetChecksum:OffsetChecksum+ChecksumSize]) is
	// already zero from make(); compute over the full buffer as-is, then
	// write the digest into place.
	sum := blake3.Sum256(out)
	copy(out[OffsetChecksum:], sum[:])

	return out
}

func encodeStringTable(strs []string) []byte {
	var buf []byte
	var varint [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(varint[:], uint64(len(strs)))
	buf = append(buf, varint[:n]...)

	for _, s := range strs {
		n := binary.PutUvarint(varint[:], uint64(len(s)))
		buf = append(buf, varint[:n]...)
		buf = append(buf, s...)
	}
	return buf
}

func encodeRuleTable(rules []Rule) []byte {
	buf := make([]byte, 0, len(rules)*ruleRecordSize)
	for _, r := range rules {
		var rec [ruleRecordSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], r.SelectorID)
		binary.LittleEndian.PutUint32(rec[4:8], r.MediaID)
		rec[8] = r.Tier
		binary.LittleEndian.PutUint16(rec[9:11], r.DeclarationCount)
		binary.LittleEndian.PutUint32(rec[11:15], r.FirstDeclarationIndex)
		buf = append(buf, rec[:]...)
	}
	return buf
}

func encodeDeclarationTable(decls []Declaration) []byte {
	buf := make([]byte, 0, len(decls)*declarationRecordSize)
	for _, d := range decls {
		var rec [declarationRecordSize]byte
		binary.LittleEndian.PutUint32(rec[0:4], d.PropertyID)
		binary.LittleEndian.PutUint32(rec[4:8], d.ValueID)
		if d.Important {
			rec[8] = 1
		}
		buf = append(buf, rec[:]...)
	}
	return buf
}
