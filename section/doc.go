// Package section defines the fixed binary structures of a segment blob.
//
// A segment blob is a SegmentHeader followed by two payloads:
//
//	┌──────────────────────────────────────────────────────┐
//	│ Header (56 bytes, fixed)                             │
//	│  - Flag (4 bytes): magic, endianness, encodings and  │
//	│    compressions of both payloads                     │
//	│  - SegmentCount, PointCount (4 bytes each)           │
//	│  - Boundary/Coefficient payload sizes (4 bytes each) │
//	│  - Checksum of both payloads (4 bytes)               │
//	│  - SeriesID, Origin, End, Unit (8 bytes each)        │
//	├──────────────────────────────────────────────────────┤
//	│ Boundary payload: segment starts and last indexes    │
//	├──────────────────────────────────────────────────────┤
//	│ Coefficient payload: slopes, intercepts, errors      │
//	└──────────────────────────────────────────────────────┘
//
// The first two bytes of the flag are always little-endian so that the byte
// order of the remaining fields can be read from them.
package section
