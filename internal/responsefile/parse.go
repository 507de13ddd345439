// Package responsefile parses compiler response files (.rsp) into the
// defines, references and analyzer inputs they contribute to a project.
//
// Parsing is fail-soft: a missing or unreadable file contributes nothing and
// reports the problem through ResponseFileData.Errors.
package responsefile

import (
	"strings"

	"github.com/roach88/vsgen/internal/fileio"
	"github.com/roach88/vsgen/internal/model"
	"github.com/roach88/vsgen/internal/paths"
)

// Argument is one parsed compiler switch.
type Argument struct {
	Name  string // lowercase, without the leading '-' or '/'
	Value string // trimmed, may be empty
	Raw   string
}

// ParseArgument splits a switch such as "-define:A;B" or "/a : x.dll".
// ok is false when arg is not a switch.
func ParseArgument(arg string) (Argument, bool) {
	raw := arg
	arg = strings.TrimSpace(arg)
	if len(arg) < 2 || (arg[0] != '-' && arg[0] != '/') {
		return Argument{Raw: raw}, false
	}
	body := arg[1:]
	name, value, _ := strings.Cut(body, ":")
	return Argument{
		Name:  strings.ToLower(strings.TrimSpace(name)),
		Value: strings.TrimSpace(value),
		Raw:   raw,
	}, true
}

// Parse interprets already tokenized arguments.
// Relative analyzer and additional-file paths resolve against projectDir.
func Parse(args []string, projectDir string) model.ResponseFileData {
	var data model.ResponseFileData
	n := paths.NewNormalizer(projectDir, paths.UnixSeparator)

	for _, raw := range args {
		arg, ok := ParseArgument(raw)
		if !ok {
			if s := strings.TrimSpace(raw); s != "" {
				data.OtherArguments = append(data.OtherArguments, s)
			}
			continue
		}
		switch arg.Name {
		case "define", "d":
			data.Defines = append(data.Defines, splitList(arg.Value)...)
		case "reference", "r":
			if arg.Value != "" {
				data.FullPathReferences = append(data.FullPathReferences, unquote(arg.Value))
			}
		case "unsafe", "unsafe+":
			data.Unsafe = true
		case "unsafe-":
			data.Unsafe = false
		case "analyzer", "a":
			for _, p := range splitList(arg.Value) {
				data.Analyzers = append(data.Analyzers, n.Absolute(unquote(p)))
			}
		case "additionalfile":
			for _, p := range splitList(arg.Value) {
				data.AdditionalFiles = append(data.AdditionalFiles, n.Absolute(unquote(p)))
			}
		default:
			data.OtherArguments = append(data.OtherArguments, strings.TrimSpace(raw))
		}
	}
	return data
}

// Harvest moves analyzer and additional-file switches that a provider left
// in OtherArguments into their typed lists.
func Harvest(data model.ResponseFileData, projectDir string) model.ResponseFileData {
	if len(data.OtherArguments) == 0 {
		return data
	}
	extra := Parse(data.OtherArguments, projectDir)
	data.Analyzers = append(data.Analyzers, extra.Analyzers...)
	data.AdditionalFiles = append(data.AdditionalFiles, extra.AdditionalFiles...)

	var other []string
	for _, raw := range data.OtherArguments {
		if arg, ok := ParseArgument(raw); ok && (arg.Name == "analyzer" || arg.Name == "a" || arg.Name == "additionalfile") {
			continue
		}
		other = append(other, raw)
	}
	data.OtherArguments = other
	return data
}

// ParseFile reads and parses the response file at path.
// A relative path resolves against projectDir.
func ParseFile(f fileio.FileIO, path, projectDir string) model.ResponseFileData {
	full := path
	if !paths.IsAbsolute(paths.ToSlash(path)) && projectDir != "" {
		full = paths.NewNormalizer(projectDir, paths.UnixSeparator).Absolute(path)
	}
	if !f.Exists(full) {
		return model.ResponseFileData{Errors: []string{"response file not found: " + path}}
	}
	text, err := f.ReadAllText(full)
	if err != nil {
		return model.ResponseFileData{Errors: []string{err.Error()}}
	}
	return Parse(Tokenize(text), projectDir)
}

func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
