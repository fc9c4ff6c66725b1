// Package timeouts defines shared timeout constants used by cosmogen commands.
// Centralizing these values keeps them discoverable.
package timeouts

import "time"

// TelemetryShutdown limits how long a command waits for pending spans to
// flush after its run loop returns.
const TelemetryShutdown = 5 * time.Second

// LedgerWrite caps the time allowed to record one run in the ledger.
const LedgerWrite = 5 * time.Second
