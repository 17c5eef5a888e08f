package requestdata

import (
  "context"
  "testing"
)

func TestActorID(t *testing.T) {
  if ActorID(context.Background()) != nil {
    t.Fatal("expected nil actor without request data")
  }
  ctx := WithRequestData(context.Background(), &RequestData{UserID: 0})
  if ActorID(ctx) != nil {
    t.Fatal("expected nil actor for zero user id")
  }
  ctx = WithRequestData(context.Background(), &RequestData{UserID: 9, TokenString: "t"})
  if got := ActorID(ctx); got == nil || *got != 9 {
    t.Fatalf("ActorID = %v", got)
  }
}
