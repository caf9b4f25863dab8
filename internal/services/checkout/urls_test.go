package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeURL(t *testing.T) {
	status := "cancel"
	other := "success"

	tests := []struct {
		name   string
		base   string
		params map[string]*string
		want   string
	}{
		{
			name:   "preserves existing query",
			base:   "https://x.com/a?b=1",
			params: map[string]*string{"status": &status},
			want:   "https://x.com/a?b=1&status=cancel",
		},
		{
			name:   "no existing query",
			base:   "https://x.com/a",
			params: map[string]*string{"status": &status},
			want:   "https://x.com/a?status=cancel",
		},
		{
			name:   "overwrites same-name parameter",
			base:   "https://x.com/a?status=cancel",
			params: map[string]*string{"status": &other},
			want:   "https://x.com/a?status=success",
		},
		{
			name:   "nil value leaves parameter unset",
			base:   "https://x.com/a?b=1",
			params: map[string]*string{"status": nil},
			want:   "https://x.com/a?b=1",
		},
		{
			name:   "preserves fragment",
			base:   "https://x.com/a?b=1#section",
			params: map[string]*string{"status": &status},
			want:   "https://x.com/a?b=1&status=cancel#section",
		},
		{
			name:   "path untouched",
			base:   "https://x.com/a/b/c",
			params: map[string]*string{"status": &status},
			want:   "https://x.com/a/b/c?status=cancel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := composeURL(tt.base, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposeURLReapplyOverwrites(t *testing.T) {
	first := "success"
	second := "cancel"

	u, err := composeURL("https://x.com/a", map[string]*string{"status": &first})
	require.NoError(t, err)

	u, err = composeURL(u, map[string]*string{"status": &second})
	require.NoError(t, err)

	assert.Equal(t, "https://x.com/a?status=cancel", u)
}

func TestComposeURLInvalidBase(t *testing.T) {
	_, err := composeURL("://not-a-url", map[string]*string{})
	assert.Error(t, err)
}
