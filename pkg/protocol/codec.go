package protocol

import (
	"encoding/json"
	"errors"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

type pageInfoWire struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

type openWire struct {
	Type     string       `json:"type"`
	PageInfo pageInfoWire `json:"pageInfo"`
}

type bareWire struct {
	Type string `json:"type"`
}

// EncodeHostToSurface serializes a command to its wire shape.
func EncodeHostToSurface(msg HostToSurface) ([]byte, error) {
	switch m := msg.(type) {
	case OpenSearch:
		return json.Marshal(openWire{Type: TypeOpenSearch, PageInfo: pageInfoWire(m.PageInfo)})
	case OpenAdd:
		return json.Marshal(openWire{Type: TypeOpenAdd, PageInfo: pageInfoWire(m.PageInfo)})
	case Close:
		return json.Marshal(bareWire{Type: TypeClose})
	}
	return nil, errUnknownMessage
}

// EncodeSurfaceToHost serializes a notification to its wire shape.
func EncodeSurfaceToHost(msg SurfaceToHost) ([]byte, error) {
	switch msg.(type) {
	case CloseOverlay:
		return json.Marshal(bareWire{Type: TypeCloseOverlay})
	}
	return nil, errUnknownMessage
}

// DecodeHostToSurface validates an untrusted payload against the
// command message family. The second return is false for anything that
// is not exactly one of the known shapes: non-objects, unknown types,
// missing or non-string pageInfo fields, and any extra fields.
func DecodeHostToSurface(raw []byte) (HostToSurface, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return nil, false
	}

	msgType, ok := stringField(fields, "type")
	if !ok {
		return nil, false
	}

	switch msgType {
	case TypeOpenSearch, TypeOpenAdd:
		if len(fields) != 2 {
			return nil, false
		}
		info, ok := decodePageInfo(fields["pageInfo"])
		if !ok {
			return nil, false
		}
		if msgType == TypeOpenSearch {
			return OpenSearch{PageInfo: info}, true
		}
		return OpenAdd{PageInfo: info}, true
	case TypeClose:
		if len(fields) != 1 {
			return nil, false
		}
		return Close{}, true
	default:
		return nil, false
	}
}

// DecodeSurfaceToHost validates an untrusted payload against the
// notification message family with the same discipline.
func DecodeSurfaceToHost(raw []byte) (SurfaceToHost, bool) {
	fields, ok := objectFields(raw)
	if !ok {
		return nil, false
	}

	msgType, ok := stringField(fields, "type")
	if !ok || msgType != TypeCloseOverlay || len(fields) != 1 {
		return nil, false
	}
	return CloseOverlay{}, true
}

var errUnknownMessage = errors.New("unknown message variant")

// objectFields unmarshals raw into a field map, rejecting anything
// that is not a JSON object (including the literal null).
func objectFields(raw []byte) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false
	}
	if fields == nil {
		return nil, false
	}
	return fields, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodePageInfo(raw json.RawMessage) (core.PageInfo, bool) {
	if raw == nil {
		return core.PageInfo{}, false
	}
	fields, ok := objectFields(raw)
	if !ok || len(fields) != 2 {
		return core.PageInfo{}, false
	}
	url, ok := stringField(fields, "url")
	if !ok {
		return core.PageInfo{}, false
	}
	title, ok := stringField(fields, "title")
	if !ok {
		return core.PageInfo{}, false
	}
	return core.PageInfo{URL: url, Title: title}, true
}
