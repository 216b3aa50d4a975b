package main

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Chaincode event names delivered to off-ledger observers.
const (
	eventConfigInitialized = "ConfigInitialized"
	eventUserStateChanged  = "UserStateChanged"
	eventBatchCreated      = "BatchCreated"
	eventHandoverLogged    = "HandoverLogged"
)

type configInitializedEvent struct {
	AdminWallet  string `json:"adminWallet"`
	OracleWallet string `json:"oracleWallet"`
}

type userStateChangedEvent struct {
	UserWallet  string `json:"userWallet"`
	Role        Role   `json:"role"`
	ProfileHash string `json:"profileHash"`
	IsApproved  bool   `json:"isApproved"`
}

type batchCreatedEvent struct {
	BatchID   string `json:"batchId"`
	Producer  string `json:"producer"`
	Timestamp int64  `json:"timestamp"`
}

type handoverLoggedEvent struct {
	BatchID    string `json:"batchId"`
	FromWallet string `json:"fromWallet"`
	ToWallet   string `json:"toWallet"`
	Timestamp  int64  `json:"timestamp"`
}

func emitEvent(ctx contractapi.TransactionContextInterface, name string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %v", name, err)
	}
	return ctx.GetStub().SetEvent(name, data)
}
