package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fakeStats struct {
	name string
	file string
	d    time.Duration
	size int64
}

func (f fakeStats) GetName() string            { return f.name }
func (f fakeStats) GetFileName() string        { return f.file }
func (f fakeStats) GetDuration() time.Duration { return f.d }
func (f fakeStats) GetSize() int64             { return f.size }

func sampleStats() []StatisticsInfo {
	return []StatisticsInfo{
		fakeStats{"LÖVE", "Game.love", 120 * time.Millisecond, 2048},
		fakeStats{"Windows x64", "Game-win64.zip", 1500 * time.Millisecond, 5 * 1024 * 1024},
	}
}

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleStats(), ReportOptions{Format: FormatTable, Writer: &buf}))

	out := buf.String()
	assert.Contains(t, out, "BUILD")
	assert.Contains(t, out, "Game.love")
	assert.Contains(t, out, "Game-win64.zip")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "5.0 MiB")
	assert.Contains(t, out, "1.5s")
}

func TestWriteReportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleStats(), ReportOptions{Format: FormatJSON, Writer: &buf}))

	var rows []reportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Windows x64", rows[1].Name)
	assert.Equal(t, int64(1500), rows[1].DurationMS)
	assert.Equal(t, int64(5*1024*1024), rows[1].Size)
}

func TestWriteReportYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(sampleStats(), ReportOptions{Format: FormatYAML, Writer: &buf}))

	var rows []reportRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Game.love", rows[0].File)
}

func TestWriteReportUnknownFormat(t *testing.T) {
	err := WriteReport(sampleStats(), ReportOptions{Format: Format("xml"), Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500µs", FormatDuration(500*time.Microsecond))
	assert.Equal(t, "123ms", FormatDuration(123456*time.Microsecond))
	assert.Equal(t, "2.35s", FormatDuration(2345*time.Millisecond))
}
