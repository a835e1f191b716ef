// Package llm is a provider-agnostic chat completion client.
//
// An Adapter pairs the JSON REST client with a Dialect that maps the
// universal CompletionRequest/CompletionResponse types to one provider's
// wire format. Dialects register themselves by name from init; import the
// driver package for its side effect:
//
//	import _ "github.com/kbukum/meetverdict/llm/openai"
//
//	a, err := llm.New(llm.Config{Dialect: "openai", APIKey: key})
//
// Adapter implements provider.RequestResponse[CompletionRequest, CompletionResponse],
// so it composes with the provider middlewares.
package llm
