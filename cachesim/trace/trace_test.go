package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cachesim/cachesim/cachesim"
)

func TestParseDin_ParsesValidRecords(t *testing.T) {
	input := "0 0\n1 a\n2 ff\n"
	records, err := ParseDin(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, cachesim.ReadData, records[0].Kind)
	assert.Equal(t, uint64(0), records[0].Address)
	assert.Equal(t, cachesim.WriteData, records[1].Kind)
	assert.Equal(t, uint64(0xa), records[1].Address)
	assert.Equal(t, cachesim.ReadInst, records[2].Kind)
	assert.Equal(t, uint64(0xff), records[2].Address)
}

func TestParseDin_SkipsBlankLines(t *testing.T) {
	input := "0 0\n\n\n1 1\n"
	records, err := ParseDin(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseDin_RejectsWrongFieldCount(t *testing.T) {
	_, err := ParseDin(strings.NewReader("0 0 extra\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseDin_RejectsUnrecognizedKind(t *testing.T) {
	_, err := ParseDin(strings.NewReader("0 0\n3 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseDin_RejectsMalformedAddress(t *testing.T) {
	_, err := ParseDin(strings.NewReader("0 nothex\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestWriteDinThenParseDin_RoundTrips(t *testing.T) {
	records := []cachesim.AccessRecord{
		{Kind: cachesim.ReadData, Address: 0x0},
		{Kind: cachesim.WriteData, Address: 0xdeadbeef},
		{Kind: cachesim.ReadInst, Address: 0xff},
	}

	var buf strings.Builder
	require.NoError(t, WriteDin(&buf, records))

	got, err := ParseDin(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteCumulativeEnergyCSV_WritesRunningSum(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteCumulativeEnergyCSV(&buf, []float64{1, 2, 3}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1", lines[0])
	assert.Equal(t, "3", lines[1])
	assert.Equal(t, "6", lines[2])
}
