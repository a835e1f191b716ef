// Package rest adds typed JSON helpers on top of httpclient.
//
//	resp, err := rest.Post[botResponse](ctx, client, "/api/v1/bot", body)
//	id := resp.Data.ID
package rest
