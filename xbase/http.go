/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package xbase

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

var httpTimeout = 5 * time.Second

// HTTPResponse is a response read to the end.
type HTTPResponse struct {
	Code int
	Body string
}

// HTTPDo sends payload as json and reads the whole response, the request
// and the read share httpTimeout.
func HTTPDo(method string, url string, payload interface{}) (*HTTPResponse, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		body = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(context.Background(), httpTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &HTTPResponse{Code: resp.StatusCode, Body: string(b)}, nil
}

// HTTPGet does a get request.
func HTTPGet(url string) (*HTTPResponse, error) {
	return HTTPDo(http.MethodGet, url, nil)
}

// HTTPPost does a post request.
func HTTPPost(url string, payload interface{}) (*HTTPResponse, error) {
	return HTTPDo(http.MethodPost, url, payload)
}

// HTTPPut does a put request.
func HTTPPut(url string, payload interface{}) (*HTTPResponse, error) {
	return HTTPDo(http.MethodPut, url, payload)
}

// HTTPDelete does a delete request.
func HTTPDelete(url string) (*HTTPResponse, error) {
	return HTTPDo(http.MethodDelete, url, nil)
}
