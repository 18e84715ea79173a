// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package predictor

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Feature is one encoded column: a numeric value under its own column name,
// or a one-hot indicator named <column>_<value>.
type Feature struct {
	Name        string
	Value       float64
	Column      string
	Categorical bool
}

// Encode pairs each value with its column and one-hot expands categorical
// columns. Numeric columns come first in schema order, followed by the
// indicators, the order the fitted feature names use.
//
// A categorical value yields exactly one indicator set to 1; a null
// categorical value yields none. Numeric values must coerce to a finite float.
func Encode(columns []string, isCategorical func(string) bool, vector []any) ([]Feature, error) {
	if len(vector) != len(columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(columns), len(vector))
	}

	numeric := make([]Feature, 0, len(columns))
	indicators := make([]Feature, 0, len(columns))

	for i, col := range columns {
		v := vector[i]

		if isCategorical(col) {
			text, ok, err := categoryText(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", col, err)
			}
			if !ok {
				continue
			}
			indicators = append(indicators, Feature{
				Name:        col + "_" + text,
				Value:       1,
				Column:      col,
				Categorical: true,
			})
			continue
		}

		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		numeric = append(numeric, Feature{Name: col, Value: f, Column: col})
	}

	return append(numeric, indicators...), nil
}

// Align reindexes encoded features onto the given feature order. Features
// absent from encoded are 0; encoded features not in the order are returned
// as dropped.
func Align(encoded []Feature, features []string) (row []float64, dropped []Feature) {
	index := make(map[string]int, len(features))
	for i, f := range features {
		index[f] = i
	}

	row = make([]float64, len(features))
	for _, f := range encoded {
		i, ok := index[f.Name]
		if !ok {
			dropped = append(dropped, f)
			continue
		}
		row[i] = f.Value
	}
	return row, dropped
}

// categoryText renders a categorical value the way it appears in an encoded
// feature name. The second result is false for null. Arrays, objects and
// other non-scalar values are an error.
func categoryText(v any) (string, bool, error) {
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case json.Number:
		lit := t.String()
		if !strings.ContainsAny(lit, ".eE") {
			return lit, true, nil
		}
		f, err := t.Float64()
		if err != nil {
			return "", false, fmt.Errorf("invalid number %q: %w", lit, err)
		}
		return formatFloat(f), true, nil
	case bool:
		if t {
			return "True", true, nil
		}
		return "False", true, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true, nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), true, nil
	default:
		return "", false, fmt.Errorf("unsupported categorical value type %T", v)
	}
}

// formatFloat prints whole floats with a trailing ".0" so 2.0 and 2 stay distinct.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if f == math.Trunc(f) && !math.IsInf(f, 0) && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func toFloat(v any) (float64, error) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, fmt.Errorf("missing numeric value")
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		f = n
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			f = 1
		}
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to a number", t)
		}
		f = n
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", v)
	}
	return f, nil
}
