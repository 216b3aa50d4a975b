/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// RegisterUser creates an unapproved profile for the calling identity. The
// profile starts with no role; an administrator assigns one via ApproveUser.
func (s *SmartContract) RegisterUser(ctx contractapi.TransactionContextInterface, profileHash string) (*UserProfile, error) {
	if err := validateDigest("profileHash", profileHash); err != nil {
		return nil, err
	}

	wallet, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	now, err := txTimestamp(ctx)
	if err != nil {
		return nil, err
	}

	profile := UserProfile{
		UserWallet:   wallet,
		Role:         RoleNone,
		ProfileHash:  profileHash,
		IsApproved:   false,
		RegisteredAt: now,
	}
	if err := createRecord(ctx, userKey(wallet), &profile); err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, eventUserStateChanged, userStateChangedEvent{
		UserWallet:  profile.UserWallet,
		Role:        profile.Role,
		ProfileHash: profile.ProfileHash,
		IsApproved:  profile.IsApproved,
	}); err != nil {
		return nil, err
	}

	logger.Infow("user registered", "wallet", wallet)
	return &profile, nil
}

// ApproveUser assigns a role to a registered profile and marks it approved.
// Only the configured administrator may approve, each profile is approved at
// most once, and the Administrator role is never grantable here.
func (s *SmartContract) ApproveUser(ctx contractapi.TransactionContextInterface, targetWallet, role string) (*UserProfile, error) {
	cfg, err := getConfig(ctx)
	if err != nil {
		return nil, err
	}
	caller, err := clientWallet(ctx)
	if err != nil {
		return nil, err
	}
	if caller != cfg.AdminWallet {
		return nil, authorizationErrorf("only the administrator can approve users")
	}

	assigned := Role(role)
	if !validRoles[assigned] {
		return nil, validationErrorf("unknown role %q", role)
	}
	if assigned == RoleAdministrator {
		return nil, validationErrorf("the administrator role cannot be assigned by approval")
	}

	profile, err := getProfile(ctx, targetWallet)
	if err != nil {
		return nil, err
	}
	if profile.IsApproved {
		return nil, stateConflictErrorf("user %s is already approved", targetWallet)
	}

	profile.Role = assigned
	profile.IsApproved = true
	if err := putRecord(ctx, userKey(targetWallet), profile); err != nil {
		return nil, err
	}

	if err := emitEvent(ctx, eventUserStateChanged, userStateChangedEvent{
		UserWallet:  profile.UserWallet,
		Role:        profile.Role,
		ProfileHash: profile.ProfileHash,
		IsApproved:  profile.IsApproved,
	}); err != nil {
		return nil, err
	}

	logger.Infow("user approved", "wallet", targetWallet, "role", assigned)
	return profile, nil
}
