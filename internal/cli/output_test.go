package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccessSkipsText(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	called := false
	err := formatter.Success(map[string]int{"written": 3}, func(io.Writer) { called = true })
	require.NoError(t, err)
	assert.False(t, called)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]interface{}{"written": float64(3)}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := formatter.Success(nil, func(w io.Writer) { fmt.Fprintln(w, "3 written, 0 unchanged") })
	require.NoError(t, err)
	assert.Equal(t, "3 written, 0 unchanged\n", buf.String())

	buf.Reset()
	require.NoError(t, formatter.Success("ignored", nil))
	assert.Empty(t, buf.String())
}

func TestOutputFormatter_JSONErrorCarriesDetails(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf, ErrWriter: errBuf}

	details := map[string][]string{"written": {"Core.csproj"}}
	err := formatter.Error("WRITE_FAILED", "1 file operation failed", details, func(io.Writer) {
		t.Fatal("text renderer called in json mode")
	})
	require.NoError(t, err)
	assert.Empty(t, errBuf.String())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "WRITE_FAILED", resp.Error.Code)
	assert.Equal(t, "1 file operation failed", resp.Error.Message)
	assert.Equal(t, map[string]interface{}{"written": []interface{}{"Core.csproj"}}, resp.Error.Details)
}

func TestOutputFormatter_TextErrorSplitsStreams(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf, ErrWriter: errBuf}

	err := formatter.Error("DELETE_FAILED", "1 file operation failed", nil, func(w io.Writer) {
		fmt.Fprintln(w, "  FAILED    Old.csproj")
	})
	require.NoError(t, err)
	assert.Equal(t, "  FAILED    Old.csproj\n", buf.String())
	assert.Equal(t, "Error [DELETE_FAILED]: 1 file operation failed\n", errBuf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		errWriter bool
		wantOut   string
		wantErr   string
	}{
		{"verbose_to_err_writer", true, true, "", "written   Core.csproj\n"},
		{"verbose_falls_back_to_writer", true, false, "written   Core.csproj\n", ""},
		{"quiet", false, true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}
			if tt.errWriter {
				formatter.ErrWriter = errBuf
			}

			formatter.VerboseLog("written   %s", "Core.csproj")
			assert.Equal(t, tt.wantOut, buf.String())
			assert.Equal(t, tt.wantErr, errBuf.String())
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit_error", NewExitError(ExitFailure, "1 file operation failed"), ExitFailure},
		{"wrapped_exit_error", fmt.Errorf("sync: %w", WrapExitError(ExitCommandError, "invalid config", errors.New("bad style"))), ExitCommandError},
		{"plain_error", errors.New("unknown flag: --nope"), ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("no such file")
	err := WrapExitError(ExitCommandError, "failed to load manifest", cause)
	assert.Equal(t, "failed to load manifest: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsReported(err))

	reported := &ExitError{Code: ExitFailure, Message: "1 file operation failed", Reported: true}
	assert.Equal(t, "1 file operation failed", reported.Error())
	assert.True(t, IsReported(fmt.Errorf("run: %w", reported)))
	assert.False(t, IsReported(errors.New("plain")))
}
