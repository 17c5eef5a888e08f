package errordata

import (
	"context"
)

type key struct{}

var errorDataKey key

// ErrorData collects server-side failure detail for the request logger. It is
// never rendered to the client.
type ErrorData struct {
	Message string
	Err     error
}

func WithErrorData(ctx context.Context) context.Context {
	ed := &ErrorData{Message: ""}
	return context.WithValue(ctx, errorDataKey, ed)
}

func GetErrorData(ctx context.Context) *ErrorData {
	val := ctx.Value(errorDataKey)
	ed, ok := val.(*ErrorData)
	if !ok {
		return nil
	}
	return ed
}

func (ed *ErrorData) SetMessage(msg string) {
	ed.Message = msg
}

func (ed *ErrorData) SetError(err error) {
	ed.Err = err
	if err != nil && ed.Message == "" {
		ed.Message = err.Error()
	}
}

func (ed *ErrorData) HasMessage() bool {
	return ed.Message != ""
}
