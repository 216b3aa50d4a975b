/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func main() {
	chaincode, err := contractapi.NewChaincode(&SmartContract{})
	if err != nil {
		logger.Fatalw("error creating chaincode", "err", err)
	}

	if err := chaincode.Start(); err != nil {
		logger.Fatalw("error starting chaincode", "err", err)
	}
}
