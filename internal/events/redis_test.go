package events

import (
  "testing"

  "github.com/gondola-org/gondola-backend/internal/types"
)

func TestAuditMessageRoundTrip(t *testing.T) {
  user := uint(3)
  payload, err := encodeAuditMessage(&types.SystemLog{
    ID:          9,
    FKUser:      &user,
    Table:       "companies",
    RecordID:    4,
    Description: "Criou: companies #4",
  })
  if err != nil {
    t.Fatalf("encode: %v", err)
  }
  msg, err := decodeAuditMessage(payload)
  if err != nil {
    t.Fatalf("decode: %v", err)
  }
  if msg.ID != 9 || msg.UserID == nil || *msg.UserID != 3 || msg.ActionID != nil || msg.Table != "companies" {
    t.Fatalf("decoded %+v", msg)
  }
}

func TestDecodeRejectsGarbage(t *testing.T) {
  if _, err := decodeAuditMessage("{not json"); err == nil {
    t.Fatal("expected error")
  }
}
