package typed_flags

import (
	"slices"
	"strings"
	"testing"
)

func TestTransport_UnmarshalFlag(t *testing.T) {
	tests := map[string]struct {
		want    Transport
		wantErr bool
	}{
		"stdio": {want: TransportStdio},
		"http":  {want: TransportHTTP},
		"HTTP":  {wantErr: true},
		"sse":   {wantErr: true},
		"":      {wantErr: true},
	}

	for value, tt := range tests {
		t.Run(value, func(t *testing.T) {
			var transport Transport
			err := transport.UnmarshalFlag(value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalFlag(%q) error = %v, wantErr %v", value, err, tt.wantErr)
			}
			if transport != tt.want {
				t.Errorf("UnmarshalFlag(%q) = %q, want %q", value, transport, tt.want)
			}
		})
	}
}

func TestTransport_Complete(t *testing.T) {
	tests := []struct {
		match string
		want  []string
	}{
		{"", []string{"stdio", "http"}},
		{"s", []string{"stdio"}},
		{"std", []string{"stdio"}},
		{"H", []string{"http"}},
		{"ht", []string{"http"}},
		{"xyz", nil},
	}

	for _, tt := range tests {
		var transport Transport
		var got []string
		for _, c := range transport.Complete(tt.match) {
			got = append(got, c.Item)
			if c.Description == "" {
				t.Errorf("Complete(%q): %s has no description", tt.match, c.Item)
			}
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.match, got, tt.want)
		}
	}
}

func TestTransportValues(t *testing.T) {
	for _, v := range TransportValues {
		var parsed Transport
		if err := parsed.UnmarshalFlag(v.String()); err != nil || parsed != v {
			t.Errorf("%s does not round-trip: got %q, err %v", v, parsed, err)
		}
		if transportDescriptions[v] == "" {
			t.Errorf("%s has no description", v)
		}
	}
	if !slices.Contains(TransportValues, TransportStdio) || !slices.Contains(TransportValues, TransportHTTP) {
		t.Errorf("TransportValues = %v, want stdio and http", TransportValues)
	}
}

func TestTransport_UnmarshalFlagListsValues(t *testing.T) {
	var transport Transport
	err := transport.UnmarshalFlag("sse")
	if err == nil {
		t.Fatal("UnmarshalFlag(\"sse\") should fail")
	}
	for _, v := range TransportValues {
		if !strings.Contains(err.Error(), string(v)) {
			t.Errorf("error %q does not list %s", err, v)
		}
	}
}
