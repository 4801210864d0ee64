/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cache implements the B-CSS (.dxc) binary cache: a bit-exact,
// memory-mappable on-disk representation of a compiled rule set, per
// spec.md §4.7 and the byte-exact layout in §6.4.
package cache

// Header byte offsets and sizes, per spec.md §6.4.
const (
	OffsetMagic            = 0
	OffsetVersion          = 4
	OffsetFlags            = 5
	OffsetReserved         = 6
	OffsetSize             = 8
	OffsetStringTable      = 16
	OffsetRuleTable        = 24
	OffsetDeclarationTable = 32
	OffsetChecksum         = 40
	ChecksumSize           = 32
	HeaderSize             = OffsetChecksum + ChecksumSize // 72
)

// Magic is the 4-byte file signature "DXC\x01".
var Magic = [4]byte{0x44, 0x58, 0x43, 0x01}

// Version is the current on-disk format version.
const Version = 1

// FlagChecksumPresent is bit0 of the header flag byte.
const FlagChecksumPresent = 1 << 0

// ruleRecordSize is the fixed width of one rule-table record:
// selector_id(u32) + media_id(u32) + tier(u8) + declaration_count(u16) + first_declaration_index(u32).
const ruleRecordSize = 4 + 4 + 1 + 2 + 4

// declarationRecordSize is the fixed width of one declaration record:
// property_id(u32) + value_id(u32) + important(u8).
const declarationRecordSize = 4 + 4 + 1

// Rule is the in-memory shape of one rule-table record. MediaID 0 means
// "no media query"; a real media string is interned at MediaID-1 in the
// string table, so the sentinel stays unambiguous even when that string
// happens to intern to string-table index 0.
type Rule struct {
	SelectorID            uint32
	MediaID               uint32
	Tier                  uint8
	DeclarationCount      uint16
	FirstDeclarationIndex uint32
}

// Declaration is the in-memory shape of one declaration record.
type Declaration struct {
	PropertyID uint32
	ValueID    uint32
	Important  bool
}
