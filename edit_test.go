package txtar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditRef_Tag(t *testing.T) {
	t.Parallel()

	local := EditRef{TargetName: "f.txt"}
	assert.Equal(t, "[edit:f.txt]", local.Tag())

	remote := EditRef{TargetName: "f.txt", SourceArchive: "other.txtar"}
	assert.Equal(t, "[edit:other.txtar:f.txt]", remote.Tag())
}

func TestParseEditTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		line    string
		want    EditRef
		wantOK  bool
		wantErr bool
	}{
		{
			name:   "target only",
			line:   "[edit:f.txt]",
			want:   EditRef{TargetName: "f.txt"},
			wantOK: true,
		},
		{
			name:   "archive and target",
			line:   "[edit:other.txtar:f.txt]",
			want:   EditRef{SourceArchive: "other.txtar", TargetName: "f.txt"},
			wantOK: true,
		},
		{
			name:   "target may contain colons",
			line:   "[edit:a.txtar:ns:f.txt]",
			want:   EditRef{SourceArchive: "a.txtar", TargetName: "ns:f.txt"},
			wantOK: true,
		},
		{name: "not an edit tag", line: "[.base64]"},
		{name: "plain line", line: "hello"},
		{name: "empty target", line: "[edit:]", wantOK: true, wantErr: true},
		{name: "empty archive", line: "[edit::f.txt]", wantOK: true, wantErr: true},
		{name: "empty target after archive", line: "[edit:a:]", wantOK: true, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, ok, err := parseEditTag(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidEditSyntax)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestEditRef_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     EditRef
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "replaces exactly once",
			ref:     EditRef{TargetName: "f", OldContent: "old line\n", NewContent: "new line\n"},
			content: "before\nold line\nafter\n",
			want:    "before\nnew line\nafter\n",
		},
		{
			name:    "deletion",
			ref:     EditRef{TargetName: "f", OldContent: "gone\n"},
			content: "keep\ngone\nkeep\n",
			want:    "keep\nkeep\n",
		},
		{
			name:    "old content missing",
			ref:     EditRef{TargetName: "f", OldContent: "absent\n"},
			content: "body\n",
			wantErr: true,
		},
		{
			name:    "ambiguous match",
			ref:     EditRef{TargetName: "f", OldContent: "x\n"},
			content: "x\nx\n",
			wantErr: true,
		},
		{
			name:    "empty old content",
			ref:     EditRef{TargetName: "f"},
			content: "body\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.ref.Apply([]byte(tt.content))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrEditApply)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
