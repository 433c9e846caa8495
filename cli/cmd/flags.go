/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package cmd

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/radondb/shardcore/xbase"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	log = xbase.NewStdLog("info")

	// APIAddress is the rest api address of shardd.
	APIAddress = "127.0.0.1:8080"
)

func apiURL(path string) string {
	return fmt.Sprintf("http://%s%s", APIAddress, path)
}

// checkResponse returns the body, or an error if the status is not ok.
func checkResponse(resp *xbase.HTTPResponse, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if resp.Code != http.StatusOK {
		return "", errors.Errorf("shardcli.response.status[%d].body[%s]", resp.Code, strings.TrimSpace(resp.Body))
	}
	return resp.Body, nil
}

func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	_, err = root.ExecuteC()
	return buf.String(), err
}
