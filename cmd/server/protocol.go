// Package main provides a TCP SQL server for Mallard.
package main

import (
	"encoding/json"

	"github.com/mallard-db/mallard/core"
)

// Response is the server's reply to one line of input.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Type    string          `json:"type,omitempty"` // "query", "exec", "schema" or "auth"
	Result  json.RawMessage `json:"result,omitempty"`
}

// QueryResponse carries a fetched row set.
type QueryResponse struct {
	Columns []string   `json:"columns"`
	Rows    []core.Row `json:"rows"`
	TimeMs  float64    `json:"time_ms"`
}

// ExecResponse carries an affected-row count.
type ExecResponse struct {
	RowsAffected int64   `json:"rows_affected"`
	TimeMs       float64 `json:"time_ms"`
}

// SchemaResponse carries a schema-change outcome.
type SchemaResponse struct {
	OK     bool    `json:"ok"`
	TimeMs float64 `json:"time_ms"`
}

// AuthResponse carries the outcome of an AUTH handshake.
type AuthResponse struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity,omitempty"`
	ExpiresIn     int    `json:"expires_in,omitempty"`
}

// EncodeResponse serializes a Response to one JSON line.
func EncodeResponse(resp Response) ([]byte, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
