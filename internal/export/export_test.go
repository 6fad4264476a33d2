package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gradesys/internal/models"
)

func roster() []*models.Student {
	return []*models.Student{
		models.NewStudent("Ada Lovelace", "csc/001", 28, 18, 40),
		models.NewStudent("Smith, John", "CSC/002", 10, 5, 20),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, roster()))

	want := "Name,ID Number,CA,Practical,Exam,Total,Grade\r\n" +
		"Ada Lovelace,CSC/001,28,18,40,86,A\r\n" +
		"\"Smith, John\",CSC/002,10,5,20,35,F\r\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,ID Number,CA,Practical,Exam,Total,Grade\r\n", buf.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteCSV_WriterError(t *testing.T) {
	require.Error(t, WriteCSV(brokenWriter{}, roster()))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "CSC201 SCORES SHEET", roster()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "CSC201 SCORES SHEET", lines[0])
	assert.Empty(t, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Name"))
	assert.Contains(t, lines[3], "CSC/001")

	// columns line up
	assert.Equal(t, strings.Index(lines[2], "ID Number"), strings.Index(lines[3], "CSC/001"))
	assert.Equal(t, strings.Index(lines[2], "ID Number"), strings.Index(lines[4], "CSC/002"))
}

func TestWriteTable_NoTitle(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, "", nil))
	assert.True(t, strings.HasPrefix(buf.String(), "Name"))
}

func TestWriteCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCard(&buf, "", roster()[0]))

	out := buf.String()
	assert.Contains(t, out, "Name:")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Total:")
	assert.Contains(t, out, "86")
	assert.Equal(t, 7, strings.Count(out, "\n"))
}

func TestSafeFileName(t *testing.T) {
	tests := map[string]string{
		"CSC/001":   "CSC001",
		"mau-22_x":  "mau-22_x",
		"a b.c":     "abc",
		"../../etc": "etc",
		"///":       "student",
		"":          "student",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeFileName(in), in)
	}
}
