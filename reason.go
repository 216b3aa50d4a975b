package main

import (
	"encoding/binary"
	"hash/fnv"
	"strings"
)

// reasonClassification is the outcome of scanning a free-text flag reason.
type reasonClassification struct {
	Severe         bool
	ColdChainBreak bool
	Fraud          bool
	Breach         bool
}

// classifyReason scans the reason text for keyword triggers. The keyword set and
// evaluation order are fixed for compatibility with existing flag transactions;
// the scan is substring-based and locale-naive, so phrases like "no breach
// occurred" still count as a breach. A structured reason code is the planned
// replacement (see DESIGN.md).
func classifyReason(reason string) reasonClassification {
	lower := strings.ToLower(reason)
	return reasonClassification{
		Severe: strings.Contains(lower, "severe") ||
			strings.Contains(lower, "critical") ||
			strings.Contains(lower, "recall"),
		ColdChainBreak: strings.Contains(lower, "temperature") ||
			strings.Contains(lower, "cold"),
		Fraud: strings.Contains(lower, "fraud"),
		Breach: strings.Contains(lower, "breach") ||
			strings.Contains(lower, "temperature"),
	}
}

// reasonDigest derives the 32-byte details hash recorded with a flag event.
// Reasons of 32 bytes or fewer are embedded verbatim, left-aligned and
// zero-padded. Longer reasons fall back to an FNV-1a 64-bit hash in the low 8
// bytes. The fallback is not collision-resistant and must not be treated as an
// integrity guarantee; it only distinguishes reasons within one batch's log.
func reasonDigest(reason string) [32]byte {
	var digest [32]byte
	raw := []byte(reason)
	if len(raw) <= 32 {
		copy(digest[:], raw)
		return digest
	}
	h := fnv.New64a()
	h.Write(raw)
	binary.LittleEndian.PutUint64(digest[:8], h.Sum64())
	return digest
}
