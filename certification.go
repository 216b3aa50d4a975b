/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

func certKey(ctx contractapi.TransactionContextInterface, batchID, certType string) (string, error) {
	return ctx.GetStub().CreateCompositeKey(certObjectType, []string{batchID, certType})
}

// IssueCertification creates a certification record for a cold-chain compliant
// batch. Certifications are unique per (batch, cert type); a duplicate issuance
// fails. The batch's event log records the issuance with the cert's hash/cid.
func (s *SmartContract) IssueCertification(ctx contractapi.TransactionContextInterface, batchID, certType, certHash, certCID string) (*Certification, error) {
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := getProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	if profile.Role != RoleRegulator {
		return nil, authorizationErrorf("only a regulator can issue certifications")
	}
	if !profile.IsApproved {
		return nil, authorizationErrorf("user %s is not approved", caller)
	}
	if profile.UserWallet != caller {
		return nil, authorizationErrorf("wallet mismatch for %s", caller)
	}

	batch, err := getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if !batch.Compliance.ColdChainCompliant {
		return nil, stateConflictErrorf("batch %s is not cold-chain compliant", batchID)
	}

	if err := validateDigest("certHash", certHash); err != nil {
		return nil, err
	}
	if err := validateBoundedString("certCID", certCID, CertCIDMaxLen); err != nil {
		return nil, err
	}
	if err := validateBoundedString("certType", certType, CertTypeMaxLen); err != nil {
		return nil, err
	}

	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	cert := Certification{
		BatchID:   batchID,
		CertType:  certType,
		Issuer:    caller,
		IssueDate: now,
		CertHash:  certHash,
		CertCID:   certCID,
		Valid:     true,
	}
	key, err := certKey(ctx, batchID, certType)
	if err != nil {
		return nil, err
	}
	if err := createRecord(ctx, key, &cert); err != nil {
		return nil, err
	}

	batch.Compliance.CertificationIssued = true
	if err := batch.appendEvent(Event{
		EventType:   EventComplianceCheck,
		Timestamp:   now,
		FromWallet:  caller,
		ToWallet:    caller,
		DetailsHash: certHash,
		DetailsCID:  certCID,
	}); err != nil {
		return nil, err
	}
	if err := putRecord(ctx, batchKey(batchID), batch); err != nil {
		return nil, err
	}

	logger.Infow("certification issued", "batch", batchID, "certType", certType, "issuer", caller)
	return &cert, nil
}
