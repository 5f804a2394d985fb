// Package http exposes the analytics queries over a chi router. Handlers
// parse query-string filters, delegate to the service layer, and render
// summary tables as JSON via go-chi/render.
package http
