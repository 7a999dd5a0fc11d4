// Package canon produces canonical JSON and content-addressed identifiers for
// events and decay graphs.
//
// Canonical JSON follows RFC 8785: object keys sorted by UTF-16 code units,
// no insignificant whitespace, no HTML escaping, NFC-normalized strings.
// Floats and null are rejected; callers encode floating-point payload as
// shortest round-trip strings before hashing so fingerprints never depend on
// a float formatter.
//
// Identifiers are SHA-256 over a versioned domain prefix, a NUL separator and
// the canonical bytes.
package canon
