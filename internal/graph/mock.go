package graph

import (
	"context"
	"sync"
	"time"

	"github.com/neo4j-graph-examples/network-management/internal/types"
)

// MockCall is a recorded call on MockGraphClient.
type MockCall struct {
	Method    string
	Cypher    string
	Params    map[string]any
	Timestamp time.Time
}

// MockGraphClient is an in-memory GraphClient for tests.
// Query and ExecuteWrite serve queued results in FIFO order and record every call.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	calls        []MockCall

	queryResults []QueryResult
	writeResults []QueryResult
	queryError   error
	writeError   error
	connectError error
	closeError   error
}

var _ GraphClient = (*MockGraphClient)(nil)

// NewMockGraphClient returns a disconnected mock reporting healthy once connected.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
	}
}

func (m *MockGraphClient) record(method, cypher string, params map[string]any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Cypher:    cypher,
		Params:    params,
		Timestamp: time.Now(),
	})
}

func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect", "", nil)
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close", "", nil)
	if m.closeError != nil {
		return m.closeError
	}
	m.connected = false
	return nil
}

func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health", "", nil)
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Query", cypher, params)
	return m.next(&m.queryResults, m.queryError)
}

func (m *MockGraphClient) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("ExecuteWrite", cypher, params)
	return m.next(&m.writeResults, m.writeError)
}

// next pops the head of queue, or returns an empty result when nothing is queued.
func (m *MockGraphClient) next(queue *[]QueryResult, err error) (QueryResult, error) {
	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if err != nil {
		return QueryResult{}, err
	}
	if len(*queue) > 0 {
		result := (*queue)[0]
		*queue = (*queue)[1:]
		return result, nil
	}
	return QueryResult{Records: []map[string]any{}, Columns: []string{}}, nil
}

// AddQueryResult queues a result for Query.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryResults = append(m.queryResults, result)
}

// AddWriteResult queues a result for ExecuteWrite.
func (m *MockGraphClient) AddWriteResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeResults = append(m.writeResults, result)
}

func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

func (m *MockGraphClient) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeError = err
}

// GetCalls returns a copy of every recorded call.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns the recorded calls to method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (m *MockGraphClient) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.calls)
}

func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}
