package requestdata

import (
  "context"
)

type key struct{}

var requestDataKey key

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

type RequestData struct {
  TokenString     string
  TokenID         string
  UserID          uint
}

// ActorID returns the authenticated user id, or nil for unauthenticated calls.
func ActorID(ctx context.Context) *uint {
  rd := GetRequestData(ctx)
  if rd == nil || rd.UserID == 0 {
    return nil
  }
  id := rd.UserID
  return &id
}
