package crmapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// unwrap returns the payload of a {"data": ...} envelope, or the body itself
// when it is not an envelope.
func unwrap(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Data == nil {
		return trimmed
	}
	return env.Data
}

// decodeList accepts {"data": [...]} or a bare array. A null payload is an
// empty list.
func decodeList(body []byte) ([]json.RawMessage, error) {
	payload := unwrap(body)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return []json.RawMessage{}, nil
	}
	if payload[0] != '[' {
		return nil, fmt.Errorf("%w: expected a list", ErrMalformed)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return items, nil
}

// decodeRecord returns the record carried by a mutation response, or nil for
// a bare success indicator ({"success": true}, {"message": ...}, empty body).
func decodeRecord(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil && env.Data != nil {
		data := bytes.TrimSpace(env.Data)
		if len(data) > 0 && data[0] == '{' {
			return data
		}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil
	}
	if _, ok := fields["id"]; ok {
		return trimmed
	}
	return nil
}

type permissionEnvelope struct {
	Data struct {
		UserPermissions map[string][]string `json:"user_permissions"`
	} `json:"data"`
}
