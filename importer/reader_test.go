package importer

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkReader_Chunks(t *testing.T) {
	src := "UNITID,CTOTALT\n1,10\n2,20\n3,30\n4,40\n5,50\n"
	r, err := NewChunkReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"UNITID", "CTOTALT"}, r.Headers())

	var sizes []int
	for {
		records, err := r.Next(2)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sizes = append(sizes, len(records))
	}
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestChunkReader_ReadAllAndRaggedRows(t *testing.T) {
	r, err := NewChunkReader(strings.NewReader("a,b,c\n1,2\n3,4,5,6\n"))
	require.NoError(t, err)

	records, err := r.Next(0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4", "5", "6"}}, records)

	_, err = r.Next(0)
	assert.Equal(t, io.EOF, err)
}

func TestChunkReader_EmptySource(t *testing.T) {
	_, err := NewChunkReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestChunkReader_StripsByteOrderMarkBeforeQuotedHeader(t *testing.T) {
	src := "\ufeff\"UNITID\",\"INSTNM\",\"STABBR\"\n100654,\"Example College\",CA\n"
	r, err := NewChunkReader(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"UNITID", "INSTNM", "STABBR"}, r.Headers())

	records, err := r.Next(0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"100654", "Example College", "CA"}}, records)
}

func TestChunkReader_KeepsMojibakeHeader(t *testing.T) {
	r, err := NewChunkReader(strings.NewReader("ï»¿UNITID,INSTNM\n1,A\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ï»¿UNITID", "INSTNM"}, r.Headers())
}
