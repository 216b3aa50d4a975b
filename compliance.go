/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// evaluateCompliance compares the stored telemetry summary against the batch
// thresholds and rewrites the derived compliance state. A failed evaluation
// flags the batch and records a compliance-check event with a null details
// hash; a passing one marks the batch compliant. Pure with respect to the
// ledger: it mutates only the in-memory batch.
func evaluateCompliance(batch *Batch, callerWallet string, timestamp int64) error {
	failed := false
	if batch.IoT.MaxTemp > batch.Threshold.MaxTemp {
		batch.Compliance.ColdChainCompliant = false
		failed = true
	}
	if batch.IoT.MaxHumidity > batch.Threshold.MaxHumidity {
		batch.Compliance.ColdChainCompliant = false
		failed = true
	}

	if failed {
		batch.Status = StatusFlagged
		return batch.appendEvent(Event{
			EventType:   EventComplianceCheck,
			Timestamp:   timestamp,
			FromWallet:  callerWallet,
			ToWallet:    callerWallet,
			DetailsHash: zeroDigest,
		})
	}

	batch.Compliance.CertificationIssued = true
	batch.Status = StatusCompliant
	return nil
}

// CheckCompliance re-evaluates a batch from its stored telemetry summary. Only
// an approved regulator or the oracle may trigger it, and the summary must be
// fresher than the freshness window.
func (s *SmartContract) CheckCompliance(ctx contractapi.TransactionContextInterface, batchID string) (*Batch, error) {
	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}

	if caller != cfg.OracleWallet {
		profile, err := getProfile(ctx, caller)
		if err != nil {
			return nil, err
		}
		if profile.Role != RoleRegulator {
			return nil, authorizationErrorf("only a regulator or the oracle can check compliance")
		}
		if !profile.IsApproved {
			return nil, authorizationErrorf("user %s is not approved", caller)
		}
		if profile.UserWallet != caller {
			return nil, authorizationErrorf("wallet mismatch for %s", caller)
		}
	}

	batch, err := getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	if now-batch.IoT.Timestamp > IoTFreshnessWindow {
		return nil, stalenessErrorf("stale IoT data for batch %s", batchID)
	}

	if err := evaluateCompliance(batch, caller, now); err != nil {
		return nil, err
	}
	if err := putRecord(ctx, batchKey(batchID), batch); err != nil {
		return nil, err
	}

	logger.Infow("compliance checked", "batch", batchID, "status", batch.Status, "caller", caller)
	return batch, nil
}
