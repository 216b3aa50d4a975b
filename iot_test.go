package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cleanSummary(ts int64) IoTSummary {
	return IoTSummary{
		Timestamp:       ts,
		MinTemp:         1.0,
		MaxTemp:         3.5,
		AvgTemp:         2.0,
		MinHumidity:     45.0,
		MaxHumidity:     60.0,
		AvgHumidity:     50.0,
		LocationSummary: "cold store A -> truck 7",
	}
}

func TestUpdateIoTSummary(t *testing.T) {
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	seedBatch(t, ctx, registeredBatch("B1", "producer-wallet"))

	summary := cleanSummary(ctx.stub.now - 10)
	batch, err := contract.UpdateIoTSummary(ctx, "B1", summary, testDigest, "cid-iot")
	require.NoError(t, err)
	require.Equal(t, summary.Timestamp, batch.IoT.Timestamp)
	require.Equal(t, testDigest, batch.IoTHash)
	require.Equal(t, "cid-iot", batch.IoTCID)
	require.Equal(t, StatusRegistered, batch.Status)
	require.Empty(t, batch.Events)
}

func TestUpdateIoTSummaryOracleOnly(t *testing.T) {
	contract, ctx := newTestContext("regulator-wallet")
	seedConfig(t, ctx)
	seedUser(t, ctx, "regulator-wallet", RoleRegulator, true)
	seedBatch(t, ctx, registeredBatch("B1", "producer-wallet"))

	_, err := contract.UpdateIoTSummary(ctx, "B1", cleanSummary(100), testDigest, "cid-iot")
	require.ErrorIs(t, err, ErrAuthorization)
}

func TestUpdateIoTSummaryMonotonicity(t *testing.T) {
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	batch := registeredBatch("B1", "producer-wallet")
	batch.IoT.Timestamp = 500
	seedBatch(t, ctx, batch)

	// Equal timestamp rejected.
	_, err := contract.UpdateIoTSummary(ctx, "B1", cleanSummary(500), testDigest, "cid-iot")
	require.ErrorIs(t, err, ErrStaleness)

	// Older timestamp rejected regardless of other fields.
	breachy := cleanSummary(400)
	breachy.BreachDetected = true
	_, err = contract.UpdateIoTSummary(ctx, "B1", breachy, testDigest, "cid-iot")
	require.ErrorIs(t, err, ErrStaleness)

	// Newer timestamp accepted.
	_, err = contract.UpdateIoTSummary(ctx, "B1", cleanSummary(501), testDigest, "cid-iot")
	require.NoError(t, err)
}

func TestUpdateIoTSummaryValidation(t *testing.T) {
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	seedBatch(t, ctx, registeredBatch("B1", "producer-wallet"))

	bad := cleanSummary(100)
	bad.MinTemp = 5.0
	bad.MaxTemp = 2.0
	_, err := contract.UpdateIoTSummary(ctx, "B1", bad, testDigest, "cid-iot")
	require.ErrorIs(t, err, ErrValidation)

	_, err = contract.UpdateIoTSummary(ctx, "B1", cleanSummary(100), "00", "cid-iot")
	require.ErrorIs(t, err, ErrValidation)

	_, err = contract.UpdateIoTSummary(ctx, "B1", cleanSummary(100), testDigest, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateIoTSummaryRecalledBatch(t *testing.T) {
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	batch := registeredBatch("B1", "producer-wallet")
	batch.Status = StatusRecalled
	seedBatch(t, ctx, batch)

	_, err := contract.UpdateIoTSummary(ctx, "B1", cleanSummary(100), testDigest, "cid-iot")
	require.ErrorIs(t, err, ErrStateConflict)
}

func TestUpdateIoTSummaryBreachPath(t *testing.T) {
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	batch := registeredBatch("B1", "producer-wallet")
	batch.Threshold.MaxTemp = 5.0
	seedBatch(t, ctx, batch)

	summary := cleanSummary(ctx.stub.now - 10)
	summary.MaxTemp = 10.0
	summary.BreachDetected = true

	updated, err := contract.UpdateIoTSummary(ctx, "B1", summary, testDigest, "cid-iot")
	require.NoError(t, err)
	require.Equal(t, StatusFlagged, updated.Status)
	require.False(t, updated.Compliance.ColdChainCompliant)
	require.Equal(t, uint32(1), updated.IoT.BreachCount)

	// Breach event followed by the compliance re-evaluation event.
	require.Len(t, updated.Events, 2)
	require.Equal(t, EventBreachDetected, updated.Events[0].EventType)
	require.Equal(t, EventComplianceCheck, updated.Events[1].EventType)
	require.Equal(t, oracleWallet, updated.Events[1].FromWallet)
}

func TestUpdateIoTSummaryBreachWithinThresholds(t *testing.T) {
	// A reported breach still flags the batch even if the aggregates are within
	// thresholds; the follow-up evaluation then marks it compliant again.
	contract, ctx := newTestContext(oracleWallet)
	seedConfig(t, ctx)
	seedBatch(t, ctx, registeredBatch("B1", "producer-wallet"))

	summary := cleanSummary(ctx.stub.now - 10)
	summary.BreachDetected = true

	updated, err := contract.UpdateIoTSummary(ctx, "B1", summary, testDigest, "cid-iot")
	require.NoError(t, err)
	require.Equal(t, StatusCompliant, updated.Status)
	require.True(t, updated.Compliance.CertificationIssued)
	require.Len(t, updated.Events, 1)
	require.Equal(t, EventBreachDetected, updated.Events[0].EventType)
}
