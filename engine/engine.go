//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_engine.go -package=mocks

// Package engine wraps the external response-generation capability.
// The engine is opaque beyond its input/output contract: text in, reply out.
package engine

import "context"

// Input carries the user's text plus advisory hints for the engine.
type Input struct {
	Message string
	Lang    string
}

type IResponseEngine interface {
	Respond(ctx context.Context, input Input) (Reply, error)
}

// Reply is the sum of the two shapes an engine result can take. The
// capability's result format is only loosely specified, so the fallback
// is a typed branch rather than an implicit stringification.
type Reply interface {
	// Text projects the reply to the text that becomes the bot message.
	Text() string
}

// StructuredReply is a result that carried a named answer field.
type StructuredReply struct {
	Answer string
}

func (r StructuredReply) Text() string {
	return r.Answer
}

// OpaqueReply is any other result, rendered generically.
type OpaqueReply struct {
	Raw string
}

func (r OpaqueReply) Text() string {
	return r.Raw
}
