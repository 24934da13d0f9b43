package model

import (
	"fmt"
	"strings"
)

// IssueID derives the stable, short issue id for an IssueRecord: the
// status name, 16-bit CRCs of the message, the owning database name, and
// the owning pool name (each omitted when empty), followed by any literal
// entity identifiers (group id, vdisk id, pdisk id, node id, ...) that
// scope the issue. Two calls with identical arguments always collide to
// the same id — this is relied on by the evaluator to dedupe issues that
// independent rules raise for the same underlying condition, and by the
// merger's referential-closure invariant.
func IssueID(status Status, message, databaseName, poolName string, literalIDs ...string) string {
	parts := make([]string, 0, 4+len(literalIDs))
	parts = append(parts, status.String())
	parts = append(parts, crcHex(message))
	if databaseName != "" {
		parts = append(parts, crcHex(databaseName))
	}
	if poolName != "" {
		parts = append(parts, crcHex(poolName))
	}
	parts = append(parts, literalIDs...)
	return strings.Join(parts, "-")
}

func crcHex(s string) string {
	return fmt.Sprintf("%04x", crc16([]byte(s)))
}
