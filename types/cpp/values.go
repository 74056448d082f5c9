// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cpp

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// number extracts a numeric value. Loaded specs carry json.Number; specs
// built in code may hold Go numbers.
func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	}
	return 0, fmt.Errorf("want a number, got %s", describe(v))
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53

// integer extracts an exact integral value. Number text is read as a
// rational, so values beyond float64 precision keep every digit.
func integer(v any) (*big.Int, error) {
	switch n := v.(type) {
	case int:
		return big.NewInt(int64(n)), nil
	case int64:
		return big.NewInt(n), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case json.Number:
		r, ok := new(big.Rat).SetString(n.String())
		if !ok || !r.IsInt() {
			return nil, fmt.Errorf("want an integer, got %s", n)
		}
		return r.Num(), nil
	}
	f, err := number(v)
	if err != nil {
		return nil, fmt.Errorf("want an integer, got %s", describe(v))
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("want an integer, got %v", f)
	}
	if math.Abs(f) > maxExactFloat {
		return nil, fmt.Errorf("integer %v is beyond float64 precision", f)
	}
	return big.NewInt(int64(f)), nil
}

// decimal formats f so that it always reads as a floating-point literal.
func decimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func list(v any) ([]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list, got %s", describe(v))
	}
	return items, nil
}

func listOf(v any, n int) ([]any, error) {
	items, err := list(v)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, fmt.Errorf("want %d elements, got %d", n, len(items))
	}
	return items, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a bool"
	case string:
		return "a string"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
