package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringOrListUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    StringOrList
		wantErr bool
	}{
		{name: "scalar", in: `"one value"`, want: StringOrList{"one value"}},
		{name: "list", in: `["a","b","c"]`, want: StringOrList{"a", "b", "c"}},
		{name: "empty list", in: `[]`, want: StringOrList{}},
		{name: "number", in: `42`, wantErr: true},
		{name: "object", in: `{"a":1}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringOrList
			err := json.Unmarshal([]byte(tt.in), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Unmarshal(%s) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringOrListInStruct(t *testing.T) {
	type payload struct {
		Content StringOrList `json:"questionContent"`
	}

	var single payload
	if err := json.Unmarshal([]byte(`{"questionContent":"just one"}`), &single); err != nil {
		t.Fatalf("unmarshal scalar field: %v", err)
	}
	var many payload
	if err := json.Unmarshal([]byte(`{"questionContent":["just one"]}`), &many); err != nil {
		t.Fatalf("unmarshal list field: %v", err)
	}
	if !reflect.DeepEqual(single, many) {
		t.Errorf("scalar and single-element list decode differently: %#v vs %#v", single, many)
	}
}
