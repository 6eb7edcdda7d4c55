package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nereval "github.com/jamesainslie/go-nereval"
)

func sampleReport(t *testing.T) *nereval.Report {
	t.Helper()
	ev, err := nereval.New()
	require.NoError(t, err)

	c := ev.EvaluateDocument(
		`<ENAMEX TYPE="PERSON">An</ENAMEX> ở <ENAMEX TYPE="LOCATION">Huế</ENAMEX>`,
		`<ENAMEX TYPE="PERSON">An</ENAMEX> ở Huế`,
	)
	return &nereval.Report{
		Types:   nereval.StandardTypes,
		Subsets: []nereval.SubsetResult{{Name: "van-hoa", Documents: 1, Counters: c}},
		Total:   c,
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMUC, f)

	f, err = ParseFormat("TABLE")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}

func TestWrite_MUC(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), Options{}))

	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines, "van-hoa")
	assert.Contains(t, lines, "Total Evaluation")
	assert.Contains(t, lines, "PERSON\t\t1\t1\t1\tP=1.0\tR=1.0\tF=1.0")
	assert.Contains(t, lines, "ORGANIZATION\t0\t0\t0\tP=NaN\tR=NaN\tF=NaN")
	assert.Contains(t, lines, "LOCATION\t0\t0\t1\tP=NaN\tR=0.0\tF=NaN")
	assert.Contains(t, lines, "OVERALL\t\t1\t1\t2\tP=1.0\tR=0.5\tF=0.6666666666666666")
	assert.Equal(t, 2, strings.Count(out, "OVERALL"))
	assert.NotContains(t, out, "L1")
}

func TestWrite_Levels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), Options{Levels: true}))

	lines := strings.Split(buf.String(), "\n")
	assert.Contains(t, lines, "L1\t\t1\t1\t2\tP=1.0\tR=0.5\tF=0.6666666666666666")
	assert.Contains(t, lines, "L2\t\t0\t0\t0\tP=NaN\tR=NaN\tF=NaN")
	assert.Contains(t, lines, "L3+\t\t0\t0\t0\tP=NaN\tR=NaN\tF=NaN")
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(t), Options{Format: FormatTable}))

	out := buf.String()
	assert.Contains(t, out, "van-hoa (1 documents, 0 missing)")
	assert.Contains(t, out, "Total")
	assert.Regexp(t, `PERSON\s+1\s+1\s+1\s+1\.0000\s+1\.0000\s+1\.0000`, out)
	assert.Regexp(t, `ORGANIZATION\s+0\s+0\s+0\s+NaN\s+NaN\s+NaN`, out)
	assert.Regexp(t, `OVERALL\s+1\s+1\s+2\s+1\.0000\s+0\.5000\s+0\.6667`, out)
}

func TestRows(t *testing.T) {
	r := sampleReport(t)

	rows := Rows(r.Total, []nereval.Type{nereval.Location}, false)

	require.Len(t, rows, 2)
	assert.Equal(t, "LOCATION", rows[0].Label)
	assert.Equal(t, "OVERALL", rows[1].Label)
	assert.Equal(t, rows[0].Tally, rows[1].Tally)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{0, "0.0"},
		{1, "1.0"},
		{0.25, "0.25"},
		{2.0 / 3.0, "0.6666666666666666"},
		{0.001, "0.001"},
		{1e-5, "1.0E-5"},
		{1.5e-4, "1.5E-4"},
		{1234567, "1234567.0"},
		{1e7, "1.0E7"},
		{1.25e10, "1.25E10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_Error(t *testing.T) {
	err := Write(failWriter{}, sampleReport(t), Options{})
	assert.ErrorContains(t, err, "disk full")
}
