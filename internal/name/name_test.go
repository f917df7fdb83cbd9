package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Signature_Accepts(t *testing.T) {
	testCases := []struct {
		name string
		sig  Signature
		code Code
		want bool
	}{
		{
			name: "exact literal matches only itself",
			sig:  Signature{Mask: ^Code(0), Test: 7},
			code: 7,
			want: true,
		},
		{
			name: "exact literal rejects other code",
			sig:  Signature{Mask: ^Code(0), Test: 7},
			code: 8,
			want: false,
		},
		{
			name: "wildcard over low bits",
			sig:  Signature{Mask: 0xFF00, Test: 0x0200},
			code: 0x0255,
			want: true,
		},
		{
			name: "wildcard rejects mismatched high bits",
			sig:  Signature{Mask: 0xFF00, Test: 0x0200},
			code: 0x0355,
			want: false,
		},
		{
			name: "all-bits wildcard accepts anything",
			sig:  Signature{Mask: 0, Test: 0},
			code: 0xDEADBEEF,
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.sig.Accepts(tc.code))
		})
	}
}

func Test_Table_Lookup(t *testing.T) {
	tbl := NewTable([]Literal{
		{URI: "", Local: "foo", Code: 1},
		{URI: "", Local: "*", Code: 2},
		{URI: "urn:x", Local: "bar", Code: 3},
	}, 99)

	testCases := []struct {
		name  string
		uri   string
		local string
		want  Code
	}{
		{"exact match", "", "foo", 1},
		{"wildcard fallback within uri", "", "baz", 2},
		{"exact match in other namespace", "urn:x", "bar", 3},
		{"no literal, no wildcard, falls to default", "urn:y", "anything", 99},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tbl.Lookup(tc.uri, tc.local))
		})
	}
}
