// Package mock supplies in-process stand-ins for the ai interfaces, so
// pipeline and engine tests run without a model server.
//
// Out of the box the doubles answer deterministically. MockCompleter
// emits a parseable extraction reply built from the first words of the
// user message, MockJustifier writes one templated pitch per candidate,
// and MockProvider wires the two together behind ai.Provider.
//
// Tests that need a specific reply inject it:
//
//	completer := mock.NewMockCompleter()
//	completer.CompleteFunc = func(ctx context.Context, system, user string) (string, error) {
//	    return "```json\n{\"title\": \"Alien\"}\n```", nil
//	}
//
// Invocations are counted, so assertions can pin how often the model
// boundary was crossed:
//
//	count := completer.CallCount()
package mock
