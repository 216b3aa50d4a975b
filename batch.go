/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/hex"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// CreateBatch registers a new batch owned by the calling producer. Compliance
// thresholds are defaulted at creation; the batch starts cold-chain compliant
// with an empty event log.
func (s *SmartContract) CreateBatch(ctx contractapi.TransactionContextInterface, batchID string, origin OriginDetails, metadataHash, metadataCID string) (*Batch, error) {
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := getProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if profile.Role != RoleProducer {
		return nil, authorizationErrorf("only a producer can create batches")
	}
	if !profile.IsApproved {
		return nil, authorizationErrorf("user %s is not approved", caller)
	}
	if profile.UserWallet != caller {
		return nil, authorizationErrorf("wallet mismatch for %s", caller)
	}

	if origin.ProductionDate <= 0 {
		return nil, validationErrorf("production date must be positive")
	}
	if err := validateBoundedString("batchID", batchID, BatchIDMaxLen); err != nil {
		return nil, err
	}
	if err := validateBoundedString("productType", origin.ProductType, ProductTypeMaxLen); err != nil {
		return nil, err
	}
	if err := validateBoundedString("metadataCID", metadataCID, MetadataCIDMaxLen); err != nil {
		return nil, err
	}
	if err := validateDigest("metadataHash", metadataHash); err != nil {
		return nil, err
	}

	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	batch := Batch{
		ID:           batchID,
		Producer:     caller,
		CurrentOwner: caller,
		Status:       StatusRegistered,
		Origin:       origin,
		MetadataHash: metadataHash,
		MetadataCID:  metadataCID,
		Events:       []Event{},
		Threshold: Threshold{
			MaxTemp:           DefaultMaxTemp,
			MaxHumidity:       DefaultMaxHumidity,
			MaxBreachDuration: DefaultMaxBreachDuration,
		},
		Compliance: ComplianceFlags{ColdChainCompliant: true},
	}
	if err := createRecord(ctx, batchKey(batchID), &batch); err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, eventBatchCreated, batchCreatedEvent{
		BatchID:   batchID,
		Producer:  caller,
		Timestamp: now,
	}); err != nil {
		return nil, err
	}

	logger.Infow("batch created", "batch", batchID, "producer", caller)
	return &batch, nil
}

// FlagBatch flags or recalls a batch based on a free-text reason submitted by an
// approved regulator or the oracle. Severe reasons escalate to a recall; a
// recalled batch can never be re-flagged.
func (s *SmartContract) FlagBatch(ctx contractapi.TransactionContextInterface, batchID, reason string) (*Batch, error) {
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
			return nil, authorizationErrorf("only a regulator or the oracle can flag batches")
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
	if batch.Status == StatusRecalled {
		return nil, stateConflictErrorf("batch %s is already recalled", batchID)
	}
	if reason == "" {
		return nil, validationErrorf("reason must not be empty")
	}

	class := classifyReason(reason)
	if class.Severe {
		batch.Status = StatusRecalled
	} else {
		batch.Status = StatusFlagged
	}
	if class.ColdChainBreak {
		batch.Compliance.ColdChainCompliant = false
	}
	if class.Fraud {
		batch.Compliance.FraudDetected = true
	}
	if class.Breach {
		batch.IoT.BreachCount = saturatingInc(batch.IoT.BreachCount)
	}

	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	digest := reasonDigest(reason)
	if err := batch.appendEvent(Event{
		EventType:   EventBreachDetected,
		Timestamp:   now,
		FromWallet:  caller,
		ToWallet:    caller,
		DetailsHash: hex.EncodeToString(digest[:]),
	}); err != nil {
		return nil, err
	}

	if err := putRecord(ctx, batchKey(batchID), batch); err != nil {
		return nil, err
	}

	logger.Infow("batch flagged", "batch", batchID, "status", batch.Status, "caller", caller)
	return batch, nil
}
