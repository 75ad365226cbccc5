package ima

import (
	"bytes"
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	digestAA = strings.Repeat("aa", 20)
	digestBB = strings.Repeat("bb", 20)
	digestCC = strings.Repeat("cc", 20)
)

func TestParseEntry(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
	}{
		{
			name: "ima-ng",
			line: "10 " + digestAA + " ima-ng sha256:" + strings.Repeat("01", 32) + " /usr/bin/ls",
			want: Entry{Line: 3, Kind: KindPlain, TemplateDigest: bytes.Repeat([]byte{0xaa}, 20)},
		},
		{
			name: "namespace create",
			line: "10 " + digestBB + " ima-ns-event 0 100 200",
			want: Entry{Line: 3, Kind: KindNamespaceCreate, TemplateDigest: bytes.Repeat([]byte{0xbb}, 20),
				ParentID: "100", ChildID: "200"},
		},
		{
			name: "namespace close",
			line: "10\t" + digestBB + "\tima-ns-event\t1\t100\t200",
			want: Entry{Line: 3, Kind: KindNamespaceClose, TemplateDigest: bytes.Repeat([]byte{0xbb}, 20),
				ParentID: "100", ChildID: "200"},
		},
		{
			name: "namespace measurement",
			line: "10 " + strings.ToUpper(digestCC) + " ima-dig-imaid sha1:" + digestAA + " /bin/sh 200",
			want: Entry{Line: 3, Kind: KindNamespaceMeasurement, TemplateDigest: bytes.Repeat([]byte{0xcc}, 20),
				HashTag: "sha1", FileDigest: bytes.Repeat([]byte{0xaa}, 20), Path: "/bin/sh", NamespaceID: "200"},
		},
		{
			name: "namespace id is the last field",
			line: "10 " + digestCC + " ima-dig-imaid sha1:" + digestAA + " /bin/sh extra 300",
			want: Entry{Line: 3, Kind: KindNamespaceMeasurement, TemplateDigest: bytes.Repeat([]byte{0xcc}, 20),
				HashTag: "sha1", FileDigest: bytes.Repeat([]byte{0xaa}, 20), Path: "/bin/sh", NamespaceID: "300"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEntry(tt.line, 3, DefaultMarkers())
			require.NoError(t, err)
			assert.Equal(t, &tt.want, got)
		})
	}
}

func TestParseEntryMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"three fields", "10 " + digestAA + " ima-ng"},
		{"four fields", "10 " + digestAA + " ima-ng sha1:" + digestBB},
		{"bad template hex", "10 zz" + digestAA + " ima-ng sha1:" + digestBB + " /bin/ls"},
		{"odd template hex", "10 a" + digestAA + " ima-ng sha1:" + digestBB + " /bin/ls"},
		{"short namespace event", "10 " + digestAA + " ima-ns-event 0 100"},
		{"bad namespace flag", "10 " + digestAA + " ima-ns-event 2 100 200"},
		{"non numeric flag", "10 " + digestAA + " ima-ns-event x 100 200"},
		{"short namespace measurement", "10 " + digestAA + " ima-dig-imaid sha1:" + digestBB + " 200"},
		{"measurement without tag", "10 " + digestAA + " ima-dig-imaid " + digestBB + " /bin/ls 200"},
		{"measurement empty tag", "10 " + digestAA + " ima-dig-imaid :" + digestBB + " /bin/ls 200"},
		{"measurement bad hex", "10 " + digestAA + " ima-dig-imaid sha1:xyz /bin/ls 200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEntry(tt.line, 1, DefaultMarkers())
			require.ErrorIs(t, err, ErrMalformedLine)
		})
	}
}

func TestParseEntryCustomMarkers(t *testing.T) {
	m := Markers{NamespaceEvent: "ns-ev", NamespaceMeasurement: "ns-meas"}

	e, err := ParseEntry("10 "+digestAA+" ns-ev 0 1 2", 1, m)
	require.NoError(t, err)
	assert.Equal(t, KindNamespaceCreate, e.Kind)

	// the default names are plain measurements under other markers
	e, err = ParseEntry("10 "+digestAA+" ima-ns-event 0 1 2", 1, m)
	require.NoError(t, err)
	assert.Equal(t, KindPlain, e.Kind)
}

func TestParseEntryFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 8)
	markers := DefaultMarkers()
	prefixes := []string{"", markers.NamespaceEvent, markers.NamespaceMeasurement}

	for i := 0; i < 2000; i++ {
		var fields []string
		f.Fuzz(&fields)
		// steer a share of inputs into the namespace branches
		if len(fields) > 3 {
			fields[1] = digestAA
			fields[2] = prefixes[i%len(prefixes)]
		}
		line := strings.Join(fields, " ")
		require.NotPanics(t, func() {
			e, err := ParseEntry(line, i, markers)
			if err != nil {
				assert.ErrorIs(t, err, ErrMalformedLine)
				return
			}
			assert.Equal(t, i, e.Line)
		}, "line %q", line)
	}
}
