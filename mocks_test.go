package main

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// testStub is an in-memory world state. Unimplemented stub methods panic via the
// embedded nil interface, which keeps the fake honest about what the contract
// actually touches.
type testStub struct {
	shim.ChaincodeStubInterface
	state  map[string][]byte
	events map[string][]byte
	now    int64
}

func newTestStub() *testStub {
	return &testStub{
		state:  map[string][]byte{},
		events: map[string][]byte{},
		now:    1_700_000_000,
	}
}

func (s *testStub) GetState(key string) ([]byte, error) {
	return s.state[key], nil
}

func (s *testStub) PutState(key string, value []byte) error {
	s.state[key] = value
	return nil
}

func (s *testStub) DelState(key string) error {
	delete(s.state, key)
	return nil
}

func (s *testStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return &timestamppb.Timestamp{Seconds: s.now}, nil
}

func (s *testStub) SetEvent(name string, payload []byte) error {
	s.events[name] = payload
	return nil
}

func (s *testStub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	return "\x00" + objectType + "\x00" + strings.Join(attributes, "\x00"), nil
}

func (s *testStub) GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	var keys []string
	for k := range s.state {
		if k >= startKey && k < endKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	it := &testIterator{}
	for _, k := range keys {
		it.kvs = append(it.kvs, &queryresult.KV{Key: k, Value: s.state[k]})
	}
	return it, nil
}

type testIterator struct {
	shim.StateQueryIteratorInterface
	kvs []*queryresult.KV
	pos int
}

func (it *testIterator) HasNext() bool {
	return it.pos < len(it.kvs)
}

func (it *testIterator) Next() (*queryresult.KV, error) {
	kv := it.kvs[it.pos]
	it.pos++
	return kv, nil
}

func (it *testIterator) Close() error { return nil }

type testIdentity struct {
	cid.ClientIdentity
	id string
}

func (i *testIdentity) GetID() (string, error) {
	return i.id, nil
}

type testContext struct {
	stub     *testStub
	identity *testIdentity
}

func (c *testContext) GetStub() shim.ChaincodeStubInterface {
	return c.stub
}

func (c *testContext) GetClientIdentity() cid.ClientIdentity {
	return c.identity
}

// as switches the submitting identity without resetting state.
func (c *testContext) as(wallet string) *testContext {
	return &testContext{stub: c.stub, identity: &testIdentity{id: wallet}}
}

func newTestContext(caller string) (*SmartContract, *testContext) {
	return &SmartContract{}, &testContext{
		stub:     newTestStub(),
		identity: &testIdentity{id: caller},
	}
}

const (
	adminWallet  = "admin-wallet"
	oracleWallet = "oracle-wallet"
)

var testDigest = strings.Repeat("ab", 32)

func seedConfig(t *testing.T, ctx *testContext) {
	t.Helper()
	putTestRecord(t, ctx, configKey, &SystemConfig{
		IsInitialized: true,
		AdminWallet:   adminWallet,
		OracleWallet:  oracleWallet,
	})
}

func seedUser(t *testing.T, ctx *testContext, wallet string, role Role, approved bool) {
	t.Helper()
	putTestRecord(t, ctx, userKey(wallet), &UserProfile{
		UserWallet:   wallet,
		Role:         role,
		ProfileHash:  testDigest,
		IsApproved:   approved,
		RegisteredAt: 1_600_000_000,
	})
}

func seedBatch(t *testing.T, ctx *testContext, batch *Batch) {
	t.Helper()
	if batch.Events == nil {
		batch.Events = []Event{}
	}
	putTestRecord(t, ctx, batchKey(batch.ID), batch)
}

func putTestRecord(t *testing.T, ctx *testContext, key string, record interface{}) {
	t.Helper()
	data, err := json.Marshal(record)
	require.NoError(t, err)
	ctx.stub.state[key] = data
}

func readBatch(t *testing.T, ctx *testContext, id string) *Batch {
	t.Helper()
	data := ctx.stub.state[batchKey(id)]
	require.NotNil(t, data)
	var batch Batch
	require.NoError(t, json.Unmarshal(data, &batch))
	return &batch
}

// registeredBatch returns a batch in its post-creation shape, owned by wallet.
func registeredBatch(id, wallet string) *Batch {
	return &Batch{
		ID:           id,
		Producer:     wallet,
		CurrentOwner: wallet,
		Status:       StatusRegistered,
		Origin: OriginDetails{
			ProductionDate: 100,
			Quantity:       10,
			Weight:         25.5,
			ProductType:    "salmon",
		},
		MetadataHash: testDigest,
		MetadataCID:  "QmMetadata",
		Events:       []Event{},
		Threshold: Threshold{
			MaxTemp:           DefaultMaxTemp,
			MaxHumidity:       DefaultMaxHumidity,
			MaxBreachDuration: DefaultMaxBreachDuration,
		},
		Compliance: ComplianceFlags{ColdChainCompliant: true},
	}
}
