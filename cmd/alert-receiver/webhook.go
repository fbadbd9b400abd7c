package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Keys of the record that stands in for an undecodable payload.
const (
	parseErrorKey = "_parse_error"
	rawKey        = "raw"
)

var errInvalidUTF8 = errors.New("payload is not valid UTF-8")

// decodePayload turns a webhook body into a loosely typed JSON value. It never
// fails: a body that is not UTF-8 JSON becomes a fallback record carrying the
// recovered text, so callers handle both cases the same way. The returned
// error only reports why the fallback was used.
func decodePayload(body []byte) (any, error) {
	payload, err := parsePayload(body)
	if err != nil {
		return map[string]any{
			parseErrorKey: true,
			rawKey:        recoverText(body),
		}, err
	}
	return payload, nil
}

func parsePayload(body []byte) (any, error) {
	if !utf8.Valid(body) {
		return nil, errInvalidUTF8
	}

	// An empty body counts as an empty object.
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode payload: unexpected data after top-level value")
	}

	return payload, nil
}

// recoverText returns body as a string with every byte that is not part of a
// valid UTF-8 sequence replaced by U+FFFD.
func recoverText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}

	var b strings.Builder
	b.Grow(len(body))
	for len(body) > 0 {
		r, size := utf8.DecodeRune(body)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(body[:size])
		}
		body = body[size:]
	}
	return b.String()
}
