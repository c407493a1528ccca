package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies read by DecodeJSON.
const maxBodyBytes = 8 << 20

// ErrMalformedJSON is returned by DecodeJSON when the body is not JSON.
var ErrMalformedJSON = errors.New("malformed JSON")

// DecodeJSON decodes the request body into dst. Syntax errors and empty
// bodies wrap ErrMalformedJSON; type mismatches and field-level decode
// failures are returned as they are.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return DecodeJSONReader(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
}

// DecodeJSONReader is DecodeJSON for any reader.
func DecodeJSONReader(body io.Reader, dst interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: empty body", ErrMalformedJSON)
		case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedJSON, maxErr.Limit)
		}
		return err
	}
	return nil
}
