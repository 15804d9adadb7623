// Package kel decodes CESR-encoded key event log streams into ordered
// events, each carrying the counter-group attachments (signatures, receipts,
// seals, replay markers) that trailed it in the stream.
//
// The decoder is best effort by contract: malformed spans are skipped with
// byte-by-byte resynchronization and never abort the scan, so Parse is a
// total function over arbitrary bytes. It performs no signature validation,
// no chain verification and no I/O.
package kel
