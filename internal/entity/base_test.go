package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "text", src: `["a","b"]`, want: StringList{"a", "b"}},
		{name: "bytes", src: []byte(`["c"]`), want: StringList{"c"}},
		{name: "null", src: nil, want: StringList{}},
		{name: "unsupported type", src: 12, wantErr: true},
		{name: "not an array", src: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := got.Scan(tt.src)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_Value(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	require.Equal(t, "[]", v)

	v, err = StringList{"role-a"}.Value()
	require.NoError(t, err)
	require.Equal(t, `["role-a"]`, v)
	require.True(t, StringList{"role-a"}.Contains("role-a"))
}
