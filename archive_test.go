package txtar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive_AddFile(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "a.txt", Content: []byte("hello\n")}))
	require.NoError(t, a.AddFile(File{Name: "dir/b.txt", Content: []byte("world\n")}))

	files := a.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "dir/b.txt", files[1].Name)
	assert.Equal(t, 2, a.Len())
}

func TestArchive_AddFile_InvalidName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fileName string
	}{
		{name: "empty", fileName: ""},
		{name: "newline", fileName: "a\nb"},
		{name: "carriage return", fileName: "a\rb"},
		{name: "leading space", fileName: " a"},
		{name: "trailing space", fileName: "a "},
		{name: "marker prefix", fileName: "a-- b"},
		{name: "marker suffix", fileName: "a --b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New()
			err := a.AddFile(File{Name: tt.fileName})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.Zero(t, a.Len())
		})
	}
}

func TestArchive_AddFile_DerivesEncoding(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "bin", Content: []byte{0xff, 0x00}}))
	require.NoError(t, a.AddFile(File{Name: "txt", Content: []byte("plain\n")}))

	assert.Equal(t, EncodingBase64, a.Find("bin").Encoding)
	assert.Equal(t, EncodingPlain, a.Find("txt").Encoding)
}

func TestArchive_AddEdit(t *testing.T) {
	t.Parallel()

	a := New()
	ref := EditRef{
		TargetName:    "f.txt",
		SourceArchive: "other.txtar",
		OldContent:    "old\n",
		NewContent:    "new\n",
	}
	require.NoError(t, a.AddEdit(ref))

	f := a.Find("f.txt")
	require.NotNil(t, f)
	require.NotNil(t, f.Edit)
	assert.Equal(t, ref, *f.Edit)
	assert.Equal(t, EncodingPlain, f.Encoding)
	assert.Equal(t, "[edit:other.txtar:f.txt]\nold\n-- new --\nnew\n", string(f.Content))
}

func TestArchive_AddEdit_EmptyTarget(t *testing.T) {
	t.Parallel()

	a := New()
	err := a.AddEdit(EditRef{OldContent: "x\n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestArchive_AddEdit_MarkerContentRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ref  EditRef
	}{
		{
			name: "marker line in old content",
			ref:  EditRef{TargetName: "f", OldContent: "a\n-- x --\nb\n", NewContent: "c\n"},
		},
		{
			name: "delimiter line in old content",
			ref:  EditRef{TargetName: "f", OldContent: "a\n-- new --\nb\n", NewContent: "c\n"},
		},
		{
			name: "marker line in new content",
			ref:  EditRef{TargetName: "f", OldContent: "a\n", NewContent: "-- x --\n"},
		},
		{
			name: "delimiter line in new content",
			ref:  EditRef{TargetName: "f", OldContent: "a\n", NewContent: "b\n-- new --\nc\n"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New()
			err := a.AddEdit(tt.ref)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidEditSyntax)
			assert.Zero(t, a.Len())
		})
	}
}

func TestArchive_Remove(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "a", Content: []byte("1\n")}))
	require.NoError(t, a.AddFile(File{Name: "b", Content: []byte("2\n")}))
	require.NoError(t, a.AddFile(File{Name: "a", Content: []byte("3\n")}))

	assert.True(t, a.Remove("a"))
	require.Equal(t, 1, a.Len())
	assert.Equal(t, "b", a.Files()[0].Name)

	assert.False(t, a.Remove("missing"))
}

func TestArchive_Find(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "dup", Content: []byte("first\n")}))
	require.NoError(t, a.AddFile(File{Name: "dup", Content: []byte("second\n")}))

	f := a.Find("dup")
	require.NotNil(t, f)
	assert.Equal(t, "first\n", string(f.Content))

	assert.Nil(t, a.Find("missing"))
}

func TestArchive_HasDuplicateNames(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "a"}))
	require.NoError(t, a.AddFile(File{Name: "b"}))
	assert.False(t, a.HasDuplicateNames())

	require.NoError(t, a.AddFile(File{Name: "a"}))
	assert.True(t, a.HasDuplicateNames())
}

func TestArchive_Preamble(t *testing.T) {
	t.Parallel()

	a := New()
	assert.Empty(t, a.Preamble())

	a.SetPreamble([]byte("notes\n"))
	assert.Equal(t, "notes\n", string(a.Preamble()))
}

func TestArchive_Validate(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddFile(File{Name: "txt", Content: []byte("fine\n")}))
	require.NoError(t, a.AddFile(File{Name: "bin", Content: []byte{0xff}}))
	require.NoError(t, a.AddEdit(EditRef{TargetName: "txt", OldContent: "fine\n", NewContent: "better\n"}))
	require.NoError(t, a.Validate())

	// A plain tag forced onto binary content cannot round-trip.
	a.Find("bin").Encoding = EncodingPlain
	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBinaryContent)
}

func TestArchive_Validate_EditMarkerContent(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.AddEdit(EditRef{TargetName: "f", OldContent: "old\n", NewContent: "new\n"}))
	require.NoError(t, a.Validate())

	a.Find("f").Edit.OldContent = "-- x --\n"
	err := a.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEditSyntax)
}

func TestEncoding_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", EncodingPlain.String())
	assert.Equal(t, "base64", EncodingBase64.String())
}
