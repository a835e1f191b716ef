// Package httpclient provides the outbound HTTP client used to talk to the
// recording provider and the language model.
//
// The Client resolves paths against a BaseURL (absolute URLs pass through
// untouched), applies default headers and authentication, and classifies
// non-2xx responses into *Error values that keep the status and body.
// Nothing is retried here; callers decide what a failure means.
//
//	client, _ := httpclient.New(httpclient.Config{
//	    BaseURL: "https://us-west-2.recall.ai",
//	    Auth:    httpclient.TokenAuth(apiKey),
//	})
//	resp, err := client.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/api/v1/bot/abc/"})
//
// The rest subpackage layers typed JSON decoding on top.
package httpclient
