package adapters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/aretw0/ntmtrace/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// LoadParams reads a key=value parameter file.
func LoadParams(path string) (*domain.RunParameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parameter file: %w", err)
	}
	defer f.Close()
	return ParseParams(path, f)
}

// ParseParams parses "key=value" lines. Each line is split on its first '='.
// input_strings is a comma separated list, max_depth and max_steps are
// integers where 0 means unbounded, and debug is true only for "true" in any
// case. Unknown keys are kept in Extra.
func ParseParams(name string, r io.Reader) (*domain.RunParameters, error) {
	raw := make(map[string]any)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, &domain.ParseError{
				Path: name,
				Line: line,
				Err:  fmt.Errorf("%w: expected key=value, got %q", domain.ErrMalformedParams, text),
			}
		}
		raw[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}

	params, err := DecodeParams(raw)
	if err != nil {
		return nil, &domain.ParseError{Path: name, Err: err}
	}
	return params, nil
}

// DecodeParams maps loosely typed values (strings from the parameter file, or
// JSON numbers and booleans from a transport) onto RunParameters.
func DecodeParams(raw map[string]any) (*domain.RunParameters, error) {
	params := &domain.RunParameters{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "param",
		WeaklyTypedInput: true,
		Result:           params,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			limitHook,
			inputListHook,
			debugFlagHook,
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedParams, err)
	}
	return params, nil
}

var limitType = reflect.TypeOf(domain.Limit{})

// limitHook turns integers (or integer strings) into limits; 0 is unbounded.
func limitHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != limitType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		return domain.LimitOf(n), nil
	case int:
		return domain.LimitOf(v), nil
	case int64:
		return domain.LimitOf(int(v)), nil
	case float64:
		if v != float64(int(v)) {
			return nil, fmt.Errorf("invalid limit %v", v)
		}
		return domain.LimitOf(int(v)), nil
	}
	return data, nil
}

// inputListHook splits a comma separated string into trimmed entries.
func inputListHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	parts := strings.Split(data.(string), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// debugFlagHook accepts only "true" (any case) as true.
func debugFlagHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
		return data, nil
	}
	return strings.EqualFold(strings.TrimSpace(data.(string)), "true"), nil
}
