package generator

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/nodeidgen/internal/csvparser"
	"github.com/ginjaninja78/nodeidgen/internal/enumwriter"
	"github.com/ginjaninja78/nodeidgen/internal/validation"
)

const preamble = "\n" +
	"/// @author Alexander Rykovanov 2014\n" +
	"/// @email rykovanov.as@gmail.com\n" +
	"/// @brief Well known attributes identifiers.\n" +
	"/// @license GNU LGPL\n" +
	"///\n" +
	"/// Distributed under the GNU LGPL License\n" +
	"/// (See accompanying file LICENSE or copy at\n" +
	"/// http://www.gnu.org/licenses/lgpl.html)\n" +
	"///\n" +
	"\n" +
	"///\n" +
	"/// DO NOT EDIT! File is autogenerated.\n" +
	"///\n" +
	"\n" +
	"\n" +
	"#pragma once\n" +
	"\n" +
	"#include <stdint.h>\n" +
	"\n" +
	"namespace OpcUa\n" +
	"{\n" +
	"  enum class ObjectID : uint32_t\n" +
	"  {\n" +
	"    Null = 0,\n" +
	"\n"

const postamble = "\n" +
	"    Server_ServerCapabilities_ModellingRules = 2996,\n" +
	"    EventTypesFolder = 3048,\n" +
	"    Server_ServerCapabilities_SoftwareCertificates = 3704\n" +
	"  };\n" +
	"}\n" +
	"\n"

func writeTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "NodeIds.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestGenerateGolden(t *testing.T) {
	path := writeTable(t, "Foo,100\nBar,101\n")

	var out bytes.Buffer
	require.NoError(t, Generate(path, &out))

	want := preamble +
		"    Foo = 100,\n" +
		"    Bar = 101,\n" +
		postamble
	assert.Equal(t, want, out.String())
}

func TestGenerateEntryLinesInOrder(t *testing.T) {
	var table strings.Builder
	var want []string
	for i, name := range []string{"RootFolder", "ObjectsFolder", "TypesFolder", "ViewsFolder", "Server"} {
		value := 84 + i
		table.WriteString(name + "," + strconv.Itoa(value) + "\n")
		want = append(want, "    "+name+" = "+strconv.Itoa(value)+",")
	}

	var out bytes.Buffer
	require.NoError(t, Generate(writeTable(t, table.String()), &out))

	body := strings.TrimSuffix(strings.TrimPrefix(out.String(), preamble), postamble)
	assert.Equal(t, want, strings.Split(strings.TrimSuffix(body, "\n"), "\n"))
}

func TestGenerateEmptyTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Generate(writeTable(t, ""), &out))

	assert.Equal(t, preamble+postamble, out.String())
	assert.Equal(t, 1, strings.Count(out.String(), "Null = 0"))
}

func TestGenerateNullFromTableIsNotDeduplicated(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Generate(writeTable(t, "Null,0\n"), &out))

	assert.Equal(t, 2, strings.Count(out.String(), "    Null = 0,\n"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	path := writeTable(t, "Foo,100\nFoo,100\nBar,abc\n")

	var first, second bytes.Buffer
	require.NoError(t, Generate(path, &first))
	require.NoError(t, Generate(path, &second))

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Contains(t, first.String(), "    Bar = abc,\n")
}

func TestGenerateMalformedRow(t *testing.T) {
	path := writeTable(t, "Foo,100\nOnlyName\nBar,101\n")

	var out bytes.Buffer
	err := Generate(path, &out)

	var malformed *validation.MalformedRowError
	require.True(t, errors.As(err, &malformed), "got %v", err)
	assert.Equal(t, 2, malformed.Line)
	assert.Empty(t, out.String(), "partial output must not reach the writer")
}

func TestGenerateMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := Generate(filepath.Join(t.TempDir(), "NodeIds.csv"), &out)

	var missing *MissingFileError
	require.True(t, errors.As(err, &missing), "got %v", err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, out.String())
}

func TestGenerateDirectoryIsMissingFile(t *testing.T) {
	var out bytes.Buffer
	err := Generate(t.TempDir(), &out)

	var missing *MissingFileError
	assert.True(t, errors.As(err, &missing), "got %v", err)
	assert.Empty(t, out.String())
}

func TestGenerateStrictValues(t *testing.T) {
	g, err := New(Options{StrictValues: true})
	require.NoError(t, err)

	t.Run("valid values", func(t *testing.T) {
		var out bytes.Buffer
		result, err := g.Generate(writeTable(t, "Foo,100\nBar,4294967295\n"), &out)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Rows)
	})

	for _, value := range []string{"abc", "-1", "4294967296", " 7", ""} {
		t.Run("rejects "+value, func(t *testing.T) {
			var out bytes.Buffer
			_, err := g.Generate(writeTable(t, "Foo,1\nBar,"+value+"\n"), &out)

			var bad *validation.MalformedValueError
			require.True(t, errors.As(err, &bad), "got %v", err)
			assert.Equal(t, 2, bad.Line)
			assert.Equal(t, "Bar", bad.Name)
			assert.Empty(t, out.String())
		})
	}
}

func TestGenerateResult(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	g, err := New(Options{Logger: &log})
	require.NoError(t, err)

	path := writeTable(t, "Foo,100\nBar,101\n")

	var out bytes.Buffer
	result, err := g.Generate(path, &out)
	require.NoError(t, err)

	assert.Equal(t, path, result.Source)
	assert.Equal(t, 2, result.Rows)
	assert.Equal(t, int64(out.Len()), result.Bytes)
	assert.NotEmpty(t, result.RunID)

	assert.Contains(t, logs.String(), result.RunID)
	assert.Contains(t, logs.String(), `"rows":2`)
}

func TestGenerateFromReader(t *testing.T) {
	g, err := New(Options{})
	require.NoError(t, err)

	reader, err := csvparser.NewStreamingParser(strings.NewReader("Foo,100\n"), csvparser.DefaultSettings())
	require.NoError(t, err)

	var out bytes.Buffer
	result, err := g.GenerateFrom(reader, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rows)
	assert.Equal(t, preamble+"    Foo = 100,\n"+postamble, out.String())
}

func TestGenerateWorkbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellStr("Sheet1", "A1", "Foo"))
	require.NoError(t, f.SetCellStr("Sheet1", "B1", "100"))
	require.NoError(t, f.SetCellStr("Sheet1", "A2", "Bar"))
	require.NoError(t, f.SetCellStr("Sheet1", "B2", "101"))

	path := filepath.Join(t.TempDir(), "NodeIds.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	var out bytes.Buffer
	require.NoError(t, Generate(path, &out))

	assert.Equal(t, preamble+"    Foo = 100,\n    Bar = 101,\n"+postamble, out.String())
}

func TestGenerateMissingWorkbook(t *testing.T) {
	var out bytes.Buffer
	err := Generate(filepath.Join(t.TempDir(), "NodeIds.xlsx"), &out)

	var missing *MissingFileError
	assert.True(t, errors.As(err, &missing), "got %v", err)
}

func TestNewUnknownTarget(t *testing.T) {
	_, err := New(Options{Target: "rust"})

	var unknown *enumwriter.UnknownSyntaxError
	assert.True(t, errors.As(err, &unknown))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestGenerateWriterFailure(t *testing.T) {
	err := Generate(writeTable(t, "Foo,100\n"), failingWriter{})
	assert.ErrorContains(t, err, "broken pipe")
}

func TestValidate(t *testing.T) {
	path := writeTable(t, "Foo,100\nOnlyName\nBar,abc\nBaz,7\nAlso\n")

	t.Run("shape only", func(t *testing.T) {
		g, err := New(Options{})
		require.NoError(t, err)

		report, err := g.Validate(path)
		require.NoError(t, err)

		assert.Equal(t, 3, report.Rows)
		require.Len(t, report.Errors, 2)
		assert.False(t, report.Valid())
		assert.Contains(t, report.FormatErrors(), "line 2")
		assert.Contains(t, report.FormatErrors(), "line 5")
	})

	t.Run("strict values", func(t *testing.T) {
		g, err := New(Options{StrictValues: true})
		require.NoError(t, err)

		report, err := g.Validate(path)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Rows)
		require.Len(t, report.Errors, 3)

		var bad *validation.MalformedValueError
		assert.True(t, errors.As(report.Errors[1], &bad))
	})

	t.Run("missing file", func(t *testing.T) {
		g, err := New(Options{})
		require.NoError(t, err)

		_, err = g.Validate(filepath.Join(t.TempDir(), "missing.csv"))
		var missing *MissingFileError
		assert.True(t, errors.As(err, &missing))
	})
}
