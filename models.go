/*
SPDX-License-Identifier: Apache-2.0
*/

package main

// Bounded field sizes. Oversized inputs are rejected before any state is written.
const (
	BatchIDMaxLen         = 64
	MetadataCIDMaxLen     = 128
	DetailsCIDMaxLen      = 64
	CertTypeMaxLen        = 128
	CertCIDMaxLen         = 128
	IoTCIDMaxLen          = 128
	LocationSummaryMaxLen = 256
	ProductTypeMaxLen     = 64

	// EventCapacity bounds the per-batch audit log. Appends beyond the cap fail;
	// entries are never overwritten or dropped.
	EventCapacity = 50

	// IoTFreshnessWindow is the maximum age in seconds of the stored telemetry
	// summary accepted by an explicit compliance check.
	IoTFreshnessWindow = 3600
)

// Default thresholds applied at batch creation.
const (
	DefaultMaxTemp           = 4.0
	DefaultMaxHumidity       = 70.0
	DefaultMaxBreachDuration = 300
)

// Role is the closed set of participant roles.
type Role string

const (
	RoleNone          Role = "NONE"
	RoleProducer      Role = "PRODUCER"
	RoleProcessor     Role = "PROCESSOR"
	RoleDistributor   Role = "DISTRIBUTOR"
	RoleRetailer      Role = "RETAILER"
	RoleConsumer      Role = "CONSUMER"
	RoleRegulator     Role = "REGULATOR"
	RoleAdministrator Role = "ADMINISTRATOR"
)

var validRoles = map[Role]bool{
	RoleNone:          true,
	RoleProducer:      true,
	RoleProcessor:     true,
	RoleDistributor:   true,
	RoleRetailer:      true,
	RoleConsumer:      true,
	RoleRegulator:     true,
	RoleAdministrator: true,
}

// BatchStatus is the closed set of batch lifecycle states.
type BatchStatus string

const (
	StatusRegistered   BatchStatus = "REGISTERED"
	StatusInProcessing BatchStatus = "IN_PROCESSING"
	StatusInTransit    BatchStatus = "IN_TRANSIT"
	StatusSold         BatchStatus = "SOLD"
	StatusFlagged      BatchStatus = "FLAGGED"
	StatusRecalled     BatchStatus = "RECALLED"
	StatusCompliant    BatchStatus = "COMPLIANT"
)

// EventType classifies audit log entries.
type EventType string

const (
	EventHandOver         EventType = "HAND_OVER"
	EventBreachDetected   EventType = "BREACH_DETECTED"
	EventProcessingUpdate EventType = "PROCESSING_UPDATE"
	EventStorageUpdate    EventType = "STORAGE_UPDATE"
	EventComplianceCheck  EventType = "COMPLIANCE_CHECK"
)

// SystemConfig is the one-time process-wide configuration record.
type SystemConfig struct {
	IsInitialized bool   `json:"isInitialized"`
	AdminWallet   string `json:"adminWallet"`
	OracleWallet  string `json:"oracleWallet"`
}

// UserProfile represents a registered participant identity.
type UserProfile struct {
	UserWallet   string `json:"userWallet"`
	Role         Role   `json:"role"`
	ProfileHash  string `json:"profileHash"`
	IsApproved   bool   `json:"isApproved"`
	RegisteredAt int64  `json:"registeredAt"`
}

// OriginDetails describes the production origin of a batch.
type OriginDetails struct {
	ProductionDate int64   `json:"productionDate"`
	Quantity       uint64  `json:"quantity"`
	Weight         float64 `json:"weight"`
	ProductType    string  `json:"productType"`
}

// Event is one append-only audit log entry. Entries are never mutated or removed.
type Event struct {
	EventType   EventType `json:"eventType"`
	Timestamp   int64     `json:"timestamp"`
	FromWallet  string    `json:"fromWallet"`
	ToWallet    string    `json:"toWallet"`
	DetailsHash string    `json:"detailsHash"`
	DetailsCID  string    `json:"detailsCid"`
}

// IoTSummary is an oracle-submitted telemetry aggregate.
type IoTSummary struct {
	Timestamp       int64   `json:"timestamp"`
	MinTemp         float64 `json:"minTemp"`
	MaxTemp         float64 `json:"maxTemp"`
	AvgTemp         float64 `json:"avgTemp"`
	MinHumidity     float64 `json:"minHumidity"`
	MaxHumidity     float64 `json:"maxHumidity"`
	AvgHumidity     float64 `json:"avgHumidity"`
	LocationSummary string  `json:"locationSummary"`
	BreachDetected  bool    `json:"breachDetected"`
	BreachCount     uint32  `json:"breachCount"`
}

// Threshold holds the per-batch compliance limits telemetry is compared against.
type Threshold struct {
	MaxTemp           float64 `json:"maxTemp"`
	MaxHumidity       float64 `json:"maxHumidity"`
	MaxBreachDuration uint32  `json:"maxBreachDuration"`
}

// ComplianceFlags is derived state recomputed by compliance evaluation.
type ComplianceFlags struct {
	ColdChainCompliant  bool `json:"coldChainCompliant"`
	FraudDetected       bool `json:"fraudDetected"`
	CertificationIssued bool `json:"certificationIssued"`
}

// Batch is a traceable unit of product moving through custody.
type Batch struct {
	ID           string          `json:"id"`
	Producer     string          `json:"producer"`
	CurrentOwner string          `json:"currentOwner"`
	Status       BatchStatus     `json:"status"`
	Origin       OriginDetails   `json:"origin"`
	MetadataHash string          `json:"metadataHash"`
	MetadataCID  string          `json:"metadataCid"`
	Events       []Event         `json:"events"`
	IoT          IoTSummary      `json:"iotSummary"`
	IoTHash      string          `json:"iotHash"`
	IoTCID       string          `json:"iotCid"`
	Threshold    Threshold       `json:"threshold"`
	Compliance   ComplianceFlags `json:"compliance"`
}

// Certification is an issuer attestation, unique per (batch, cert type).
type Certification struct {
	BatchID   string `json:"batchId"`
	CertType  string `json:"certType"`
	Issuer    string `json:"issuer"`
	IssueDate int64  `json:"issueDate"`
	CertHash  string `json:"certHash"`
	CertCID   string `json:"certCid"`
	Valid     bool   `json:"valid"`
}

// appendEvent enforces the event log capacity. The (capacity+1)-th append fails
// and, because the whole transaction aborts, leaves the log unchanged.
func (b *Batch) appendEvent(e Event) error {
	if len(b.Events) >= EventCapacity {
		return capacityErrorf("event log full for batch %s (max %d entries)", b.ID, EventCapacity)
	}
	b.Events = append(b.Events, e)
	return nil
}

// saturatingInc clamps at the uint32 maximum instead of wrapping.
func saturatingInc(n uint32) uint32 {
	if n == ^uint32(0) {
		return n
	}
	return n + 1
}
