/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// InitializeConfig creates the one-time system configuration naming the
// administrator and oracle identities. A second call fails and the record is
// immutable for the remainder of the system's life.
func (s *SmartContract) InitializeConfig(ctx contractapi.TransactionContextInterface, adminWallet, oracleWallet string) (*SystemConfig, error) {
	if adminWallet == "" || oracleWallet == "" {
		return nil, validationErrorf("admin and oracle wallets must be set")
	}
	if adminWallet == oracleWallet {
		return nil, validationErrorf("admin and oracle wallets must differ")
	}

	existing, err := ctx.GetStub().GetState(configKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, stateConflictErrorf("system config is already initialized")
	}

	cfg := SystemConfig{
		IsInitialized: true,
		AdminWallet:   adminWallet,
		OracleWallet:  oracleWallet,
	}
	if err := putRecord(ctx, configKey, &cfg); err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, eventConfigInitialized, configInitializedEvent{
		AdminWallet:  adminWallet,
		OracleWallet: oracleWallet,
	}); err != nil {
		return nil, err
	}

	logger.Infow("system config initialized", "admin", adminWallet, "oracle", oracleWallet)
	return &cfg, nil
}
