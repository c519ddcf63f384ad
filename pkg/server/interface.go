/*
Package server implements msgpack IPC for suggestion ranking services.

The server provides a minimal interface for query ranking using msgpack
serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports query requests and
config updates. Messages are processed synchronously with timing info
included in responses.

# IPC

The server operates on a request response model where clients send
structured messages via stdin and receive responses through stdout. Each
message contains an ID field and other fields based on the operation type.

Query requests use mainly this structure:

	{"id": "req_001", "q": "ame", "l": 24}

The server responds with suggestions ranked by match score:

	{"id": "req_001", "s": [{"w": "amenity", "r": 1}, {"w": "america", "r": 2}], "c": 2, "t": 145}

Config management enables runtime adjustment of ranking parameters:

	{"id": "cfg_001", "action": "get"}
	{"id": "cfg_002", "action": "set", "max_suggestions": 16}

Response structures include status information and error details when an
op fails.

# Message Types

QueryRequest and QueryResponse handle the main ranking operation. Requests
include a query string and optional limit for result count. Responses
contain suggestion arrays with word strings and rank positions, plus
timing data.

ConfigRequest and ConfigResponse adjust ranking parameters without
restart: result limit, minimum query length, debounce delay, and fuzzy
matching.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
The binary format enables faster parsing and generation too.
*/
package server

// QueryRequest - minimal ranking request
type QueryRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Limit int    `msgpack:"l,omitempty"`
}

// RankedSuggestion - minimal suggestion response
type RankedSuggestion struct {
	Word string `msgpack:"w"`
	Rank uint16 `msgpack:"r"`
}

// QueryResponse - ranking response
type QueryResponse struct {
	ID          string             `msgpack:"id"`
	Suggestions []RankedSuggestion `msgpack:"s"`
	Count       int                `msgpack:"c"`
	TimeTaken   int64              `msgpack:"t"`
}

// ConfigRequest - runtime config request. Pointer fields are applied only
// when present, so a "set" can change one knob without touching the rest.
type ConfigRequest struct {
	ID             string `msgpack:"id"`
	Action         string `msgpack:"action"` // "get", "set"
	MaxSuggestions *int   `msgpack:"max_suggestions,omitempty"`
	MinQueryLength *int   `msgpack:"min_query_length,omitempty"`
	DebounceMs     *int   `msgpack:"debounce_ms,omitempty"`
	Fuzzy          *bool  `msgpack:"fuzzy,omitempty"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID             string `msgpack:"id"`
	Status         string `msgpack:"status"`
	Error          string `msgpack:"error,omitempty"`
	MaxSuggestions int    `msgpack:"max_suggestions,omitempty"`
	MinQueryLength int    `msgpack:"min_query_length,omitempty"`
	DebounceMs     int    `msgpack:"debounce_ms,omitempty"`
	Fuzzy          bool   `msgpack:"fuzzy,omitempty"`
}

// QueryError holds basic error information for ranking requests
type QueryError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
