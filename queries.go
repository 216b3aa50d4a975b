/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// GetConfig returns the system configuration.
func (s *SmartContract) GetConfig(ctx contractapi.TransactionContextInterface) (*SystemConfig, error) {
	return getConfig(ctx)
}

// GetUserProfile returns the profile registered for a wallet identity.
func (s *SmartContract) GetUserProfile(ctx contractapi.TransactionContextInterface, wallet string) (*UserProfile, error) {
	var profile UserProfile
	found, err := getRecord(ctx, userKey(wallet), &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user %s does not exist", wallet)
	}
	return &profile, nil
}

// GetBatch returns a batch by id, including its full event log.
func (s *SmartContract) GetBatch(ctx contractapi.TransactionContextInterface, batchID string) (*Batch, error) {
	var batch Batch
	found, err := getRecord(ctx, batchKey(batchID), &batch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("batch %s does not exist", batchID)
	}
	return &batch, nil
}

// GetCertification returns the certification issued for a batch and type.
func (s *SmartContract) GetCertification(ctx contractapi.TransactionContextInterface, batchID, certType string) (*Certification, error) {
	key, err := certKey(ctx, batchID, certType)
	if err != nil {
		return nil, err
	}
	var cert Certification
	found, err := getRecord(ctx, key, &cert)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("certification %s/%s does not exist", batchID, certType)
	}
	return &cert, nil
}

// ListBatches returns every batch in the ledger.
func (s *SmartContract) ListBatches(ctx contractapi.TransactionContextInterface) ([]*Batch, error) {
	iter, err := ctx.GetStub().GetStateByRange(batchKeyPrefix, batchKeyPrefix+"~")
	if err != nil {
		return nil, fmt.Errorf("failed to scan batches: %v", err)
	}
	defer iter.Close()

	var batches []*Batch
	for iter.HasNext() {
		kv, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed during batch iteration: %v", err)
		}
		var batch Batch
		if err := json.Unmarshal(kv.Value, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal batch %s: %v", kv.Key, err)
		}
		batches = append(batches, &batch)
	}
	return batches, nil
}
