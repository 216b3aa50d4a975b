/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// World state key layout. Keys are derived from stable inputs only so record
// addresses are deterministic across endorsers.
const (
	configKey       = "CONFIG"
	userKeyPrefix   = "USER_"
	batchKeyPrefix  = "BATCH_"
	certObjectType  = "certification"
)

// SmartContract provides the provenance ledger operations.
type SmartContract struct {
	contractapi.Contract
}

func userKey(wallet string) string {
	return userKeyPrefix + wallet
}

func batchKey(id string) string {
	return batchKeyPrefix + id
}

// clientWallet resolves the submitting client's identity. The peer has already
// verified the signature; the ID is trusted as the caller's wallet.
func clientWallet(ctx contractapi.TransactionContextInterface) (string, error) {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", authorizationErrorf("failed to resolve client identity: %v", err)
	}
	return id, nil
}

// txTimestamp returns the transaction time in unix seconds. This is the only
// time source; it is agreed across endorsers and therefore deterministic.
func txTimestamp(ctx contractapi.TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to read transaction timestamp: %v", err)
	}
	return ts.GetSeconds(), nil
}

func putRecord(ctx contractapi.TransactionContextInterface, key string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %v", key, err)
	}
	return ctx.GetStub().PutState(key, data)
}

// createRecord writes a record only if the key is unused. Together with Fabric's
// read-set validation this gives create-once semantics per key.
func createRecord(ctx contractapi.TransactionContextInterface, key string, record interface{}) error {
	existing, err := ctx.GetStub().GetState(key)
	if err != nil {
		return fmt.Errorf("failed to read state %s: %v", key, err)
	}
	if existing != nil {
		return stateConflictErrorf("record %s already exists", key)
	}
	return putRecord(ctx, key, record)
}

func getRecord(ctx contractapi.TransactionContextInterface, key string, record interface{}) (bool, error) {
	data, err := ctx.GetStub().GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read state %s: %v", key, err)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, record); err != nil {
		return false, fmt.Errorf("failed to unmarshal record %s: %v", key, err)
	}
	return true, nil
}

func getConfig(ctx contractapi.TransactionContextInterface) (*SystemConfig, error) {
	var cfg SystemConfig
	found, err := getRecord(ctx, configKey, &cfg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, stateConflictErrorf("system config is not initialized")
	}
	return &cfg, nil
}

func getProfile(ctx contractapi.TransactionContextInterface, wallet string) (*UserProfile, error) {
	var profile UserProfile
	found, err := getRecord(ctx, userKey(wallet), &profile)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, authorizationErrorf("identity %s is not registered", wallet)
	}
	return &profile, nil
}

func getBatch(ctx contractapi.TransactionContextInterface, id string) (*Batch, error) {
	var batch Batch
	found, err := getRecord(ctx, batchKey(id), &batch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, validationErrorf("batch %s does not exist", id)
	}
	return &batch, nil
}

const zeroDigest = "0000000000000000000000000000000000000000000000000000000000000000"

// validateDigest checks a hex-encoded 32-byte digest and rejects the zero value.
func validateDigest(name, digest string) error {
	raw, err := hex.DecodeString(digest)
	if err != nil || len(raw) != 32 {
		return validationErrorf("%s must be a hex-encoded 32-byte digest", name)
	}
	for _, b := range raw {
		if b != 0 {
			return nil
		}
	}
	return validationErrorf("%s must not be the zero digest", name)
}

// validateBoundedString rejects empty or oversized string fields.
func validateBoundedString(name, value string, maxLen int) error {
	if value == "" {
		return validationErrorf("%s must not be empty", name)
	}
	if len(value) > maxLen {
		return validationErrorf("%s exceeds %d bytes", name, maxLen)
	}
	return nil
}
