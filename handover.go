/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// handoverTransitions lists the legal custody transfers by role. Any pair not in
// the table is rejected. Extending Role forces a review of this table.
var handoverTransitions = map[Role][]Role{
	RoleProducer:    {RoleProcessor, RoleDistributor, RoleRetailer},
	RoleProcessor:   {RoleDistributor, RoleRetailer},
	RoleDistributor: {RoleRetailer},
}

func legalRoleTransition(from, to Role) bool {
	for _, allowed := range handoverTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}

// statusAfterHandover derives the batch status from the recipient's role.
func statusAfterHandover(to Role) BatchStatus {
	switch to {
	case RoleProcessor:
		return StatusInProcessing
	case RoleDistributor:
		return StatusInTransit
	case RoleRetailer, RoleConsumer:
		return StatusSold
	default:
		return StatusInTransit
	}
}

// LogHandover transfers custody of a batch from the calling current owner to the
// named recipient. The submitter must be the current owner; recipient consent is
// carried by the channel endorsement policy. On success the handover is appended
// to the event log and the status follows the recipient's role.
func (s *SmartContract) LogHandover(ctx contractapi.TransactionContextInterface, batchID, toWallet, detailsHash, detailsCID string) (*Batch, error) {
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	fromProfile, err := getProfile(ctx, caller)
	if err != nil {
		return nil, err
	}
	toProfile, err := getProfile(ctx, toWallet)
	if err != nil {
		return nil, err
	}

	if !fromProfile.IsApproved {
		return nil, authorizationErrorf("user %s is not approved", caller)
	}
	if !toProfile.IsApproved {
		return nil, authorizationErrorf("user %s is not approved", toWallet)
	}
	if fromProfile.UserWallet != caller {
		return nil, authorizationErrorf("wallet mismatch for %s", caller)
	}
	if toProfile.UserWallet != toWallet {
		return nil, authorizationErrorf("wallet mismatch for %s", toWallet)
	}

	batch, err := getBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if caller != batch.CurrentOwner {
		return nil, stateConflictErrorf("caller %s is not the current owner of batch %s", caller, batchID)
	}
	if batch.Status == StatusFlagged || batch.Status == StatusRecalled {
		return nil, stateConflictErrorf("batch %s cannot be handed over in status %s", batchID, batch.Status)
	}

	if err := validateDigest("detailsHash", detailsHash); err != nil {
		return nil, err
	}
	if err := validateBoundedString("detailsCID", detailsCID, DetailsCIDMaxLen); err != nil {
		return nil, err
	}

	if !legalRoleTransition(fromProfile.Role, toProfile.Role) {
		return nil, stateConflictErrorf("invalid role transition %s -> %s", fromProfile.Role, toProfile.Role)
	}

	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}
	if err := batch.appendEvent(Event{
		EventType:   EventHandOver,
		Timestamp:   now,
		FromWallet:  batch.CurrentOwner,
		ToWallet:    toWallet,
		DetailsHash: detailsHash,
		DetailsCID:  detailsCID,
	}); err != nil {
		return nil, err
	}

	batch.CurrentOwner = toWallet
	batch.Status = statusAfterHandover(toProfile.Role)

	if err := putRecord(ctx, batchKey(batchID), batch); err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, eventHandoverLogged, handoverLoggedEvent{
		BatchID:    batchID,
		FromWallet: caller,
		ToWallet:   toWallet,
		Timestamp:  now,
	}); err != nil {
		return nil, err
	}

	logger.Infow("handover logged", "batch", batchID, "from", caller, "to", toWallet, "status", batch.Status)
	return batch, nil
}
