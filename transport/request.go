package transport

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Request is the mutable configuration of one outbound call. The pre-send
// stage may rewrite headers before transmission; the value is scoped to the
// single call and never persisted.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded when non-nil and Form is nil.
	Body any
	// Form, when non-nil, makes the call a multipart upload. Any explicit
	// Content-Type header is dropped so the encoder can set the boundary.
	Form   *FormData
	Header http.Header
}

// FormData is a multipart form payload.
type FormData struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a multipart upload.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}

// Response is the decoded outcome of a successful call. Error responses
// never produce a Response; they produce an *APIError.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// encodeBody renders the request payload and reports the content type the
// encoder chose ("" when the request carries no body).
func encodeBody(req Request) (*bytes.Buffer, string, error) {
	if req.Form != nil {
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for field, value := range req.Form.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, "", err
			}
		}
		for _, file := range req.Form.Files {
			part, err := w.CreateFormFile(file.Field, file.Filename)
			if err != nil {
				return nil, "", err
			}
			if _, err := part.Write(file.Content); err != nil {
				return nil, "", err
			}
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return buf, w.FormDataContentType(), nil
	}

	if req.Body == nil {
		return &bytes.Buffer{}, "", nil
	}

	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewBuffer(data), "application/json", nil
}
