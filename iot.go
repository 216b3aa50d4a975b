/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// UpdateIoTSummary replaces a batch's telemetry summary with a newer one
// submitted by the oracle. Replayed or out-of-order summaries are rejected. A
// reported breach increments the breach counter, flags the batch, records a
// breach event, and immediately re-evaluates compliance as the oracle.
func (s *SmartContract) UpdateIoTSummary(ctx contractapi.TransactionContextInterface, batchID string, summary IoTSummary, newHash, newCID string) (*Batch, error) {
	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	if caller != cfg.OracleWallet {
		return nil, authorizationErrorf("unauthorized oracle %s", caller)
	}

	batch, err := getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if summary.Timestamp <= batch.IoT.Timestamp {
		return nil, stalenessErrorf("summary timestamp %d is not newer than stored timestamp %d", summary.Timestamp, batch.IoT.Timestamp)
	}
	if summary.MinTemp > summary.MaxTemp {
		return nil, validationErrorf("invalid temperature range: min %.2f above max %.2f", summary.MinTemp, summary.MaxTemp)
	}
	if len(summary.LocationSummary) > LocationSummaryMaxLen {
		return nil, validationErrorf("locationSummary exceeds %d bytes", LocationSummaryMaxLen)
	}
	if err := validateDigest("iotHash", newHash); err != nil {
		return nil, err
	}
	if err := validateBoundedString("iotCID", newCID, IoTCIDMaxLen); err != nil {
		return nil, err
	}
	if batch.Status == StatusRecalled {
		return nil, stateConflictErrorf("batch %s is recalled", batchID)
	}

	batch.IoT = summary
	batch.IoTHash = newHash
	batch.IoTCID = newCID

	if summary.BreachDetected {
		now, err := txTimestamp(ctx)
		if err != nil {
			return nil, err
		}

		batch.IoT.BreachCount = saturatingInc(batch.IoT.BreachCount)
		batch.Status = StatusFlagged
		batch.Compliance.ColdChainCompliant = false

		if err := batch.appendEvent(Event{
			EventType:   EventBreachDetected,
			Timestamp:   now,
			FromWallet:  caller,
			ToWallet:    caller,
			DetailsHash: zeroDigest,
		}); err != nil {
			return nil, err
		}

		if err := evaluateCompliance(batch, cfg.OracleWallet, now); err != nil {
			return nil, err
		}
	}

	if err := putRecord(ctx, batchKey(batchID), batch); err != nil {
		return nil, err
	}

	logger.Infow("iot summary updated", "batch", batchID, "breach", summary.BreachDetected, "status", batch.Status)
	return batch, nil
}
