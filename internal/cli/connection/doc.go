// Package connection provides server access for restoremesh-cli.
//
// Client speaks the WebSocket protocol: it receives the restoration token
// issued on connect, sets and reads session fields, and sends restore
// requests. HTTPClient reads the HTTP side routes.
package connection
