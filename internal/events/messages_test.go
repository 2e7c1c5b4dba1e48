package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestUserRegisteredMessage(t *testing.T) {
	referrer := "ref-1"
	msg := NewUserRegistered("user-1", "Alice", &referrer)

	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "user.registered" {
		t.Errorf("type = %v, want user.registered", decoded["type"])
	}
	if decoded["username"] != "Alice" {
		t.Errorf("username = %v, want Alice", decoded["username"])
	}
	if decoded["referrer_id"] != "ref-1" {
		t.Errorf("referrer_id = %v, want ref-1", decoded["referrer_id"])
	}
	if decoded["occurred_at"] == "" {
		t.Errorf("occurred_at missing")
	}
}

func TestUserRegisteredOmitsNilReferrer(t *testing.T) {
	body, err := json.Marshal(NewUserRegistered("user-1", "Alice", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["referrer_id"]; ok {
		t.Errorf("referrer_id present for nil referrer")
	}
}

func TestDonationRecordedMessage(t *testing.T) {
	msg := NewDonationRecorded("don-1", "user-1", "Alice", 50.0)

	body, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "donation.recorded" {
		t.Errorf("type = %v, want donation.recorded", decoded["type"])
	}
	if decoded["amount"] != 50.0 {
		t.Errorf("amount = %v, want 50", decoded["amount"])
	}
	if decoded["donation_id"] != "don-1" {
		t.Errorf("donation_id = %v, want don-1", decoded["donation_id"])
	}
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher
	if err := p.PublishUserRegistered(context.Background(), "u", "Alice", nil); err != nil {
		t.Errorf("nil publisher PublishUserRegistered() = %v, want nil", err)
	}
	if err := p.PublishDonationRecorded(context.Background(), "d", "u", "Alice", 1); err != nil {
		t.Errorf("nil publisher PublishDonationRecorded() = %v, want nil", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("nil publisher Close() = %v, want nil", err)
	}
}
