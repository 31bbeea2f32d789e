package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// HealthState is the coarse health of a component.
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

func (s HealthState) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known states.
func (s HealthState) IsValid() bool {
	switch s {
	case HealthStateHealthy, HealthStateDegraded, HealthStateUnhealthy:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unknown states.
func (s *HealthState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	state := HealthState(str)
	if !state.IsValid() {
		return fmt.Errorf("invalid health state: %s", str)
	}

	*s = state
	return nil
}

// HealthStatus is the result of a single health probe.
type HealthStatus struct {
	State     HealthState   `json:"state"`
	Message   string        `json:"message,omitempty"`
	Latency   time.Duration `json:"latency,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// NewHealthStatus stamps CheckedAt with the current time.
func NewHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

func Healthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateHealthy, message)
}

func Degraded(message string) HealthStatus {
	return NewHealthStatus(HealthStateDegraded, message)
}

func Unhealthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateUnhealthy, message)
}

// WithLatency returns a copy of h carrying the probe round-trip time.
func (h HealthStatus) WithLatency(d time.Duration) HealthStatus {
	h.Latency = d
	return h
}

func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}

func (h HealthStatus) IsDegraded() bool {
	return h.State == HealthStateDegraded
}

func (h HealthStatus) IsUnhealthy() bool {
	return h.State == HealthStateUnhealthy
}
