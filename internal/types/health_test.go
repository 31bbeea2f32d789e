package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHealthState_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    HealthState
		wantErr bool
	}{
		{"unmarshal healthy", `"healthy"`, HealthStateHealthy, false},
		{"unmarshal degraded", `"degraded"`, HealthStateDegraded, false},
		{"unmarshal unhealthy", `"unhealthy"`, HealthStateUnhealthy, false},
		{"unmarshal invalid", `"invalid"`, HealthState(""), true},
		{"unmarshal malformed json", `{bad}`, HealthState(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state HealthState
			err := state.UnmarshalJSON([]byte(tt.json))
			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && state != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", state, tt.want)
			}
		})
	}
}

func TestHealthStatus_Constructors(t *testing.T) {
	before := time.Now()
	statuses := []struct {
		status HealthStatus
		state  HealthState
	}{
		{Healthy("ok"), HealthStateHealthy},
		{Degraded("slow"), HealthStateDegraded},
		{Unhealthy("down"), HealthStateUnhealthy},
	}

	for _, s := range statuses {
		if s.status.State != s.state {
			t.Errorf("State = %v, want %v", s.status.State, s.state)
		}
		if s.status.CheckedAt.Before(before) {
			t.Errorf("CheckedAt = %v, want after %v", s.status.CheckedAt, before)
		}
	}

	if !Healthy("").IsHealthy() || !Degraded("").IsDegraded() || !Unhealthy("").IsUnhealthy() {
		t.Error("predicates disagree with constructors")
	}
}

func TestHealthStatus_JSONRoundTrip(t *testing.T) {
	status := Healthy("connected").WithLatency(25 * time.Millisecond)

	data, err := json.Marshal(status)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded HealthStatus
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.State != HealthStateHealthy || decoded.Latency != 25*time.Millisecond {
		t.Errorf("decoded = %+v", decoded)
	}
}
