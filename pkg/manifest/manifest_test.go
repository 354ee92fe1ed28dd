package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sternrassler/federated-pager/pkg/pageplan"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    pageplan.Manifest
		wantErr string
	}{
		{
			name: "sources in order",
			doc: `sources:
  - id: A
    record_count: 20
  - id: B
    record_count: 80
    page_size: 25
  - id: C
    record_count: 0
`,
			want: pageplan.Manifest{
				{ID: "A", RecordCount: 20},
				{ID: "B", RecordCount: 80, PageSize: 25},
				{ID: "C", RecordCount: 0},
			},
		},
		{
			name: "no sources key",
			doc:  "{}\n",
			want: pageplan.Manifest{},
		},
		{
			name: "empty list",
			doc:  "sources: []\n",
			want: pageplan.Manifest{},
		},
		{
			name:    "unknown field",
			doc:     "sources:\n  - id: A\n    records: 5\n",
			wantErr: "records",
		},
		{
			name:    "wrong type",
			doc:     "sources:\n  - id: A\n    record_count: many\n",
			wantErr: "decode",
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: ErrEmpty.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.doc))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_EmptyIsSentinel(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources:\n  - id: A\n    record_count: 3\n"), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, pageplan.Manifest{{ID: "A", RecordCount: 3}}, m)
	assert.Equal(t, 3, m.Total())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_ResolvesEndToEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml")
	doc := `sources:
  - id: A
    record_count: 20
  - id: B
    record_count: 80
  - id: C
    record_count: 150
  - id: D
    record_count: 200
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	m, err := Load(path)
	require.NoError(t, err)

	plan, err := pageplan.Resolve(m, pageplan.PageRequest{PageNumber: 1, PageSize: 50})
	require.NoError(t, err)
	require.Len(t, plan.Sources, 2)
	assert.Equal(t, pageplan.SourceRange{SourceID: "A", LocalStart: 0, LocalEnd: 19}, plan.Sources[0].Range)
	assert.Equal(t, pageplan.SourceRange{SourceID: "B", LocalStart: 0, LocalEnd: 29}, plan.Sources[1].Range)
}
