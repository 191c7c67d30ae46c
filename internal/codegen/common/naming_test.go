package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"UserID", "userID"},
		{"URL", "uRL"},
		{"already", "already"},
		{"X", "x"},
		{"", ""},
		{"_Private", "_Private"},
		{"Ärger", "ärger"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToCamelCase(tt.in))
		})
	}
}

func TestToPascalCase(t *testing.T) {
	assert.Equal(t, "UserName", ToPascalCase("user_name"))
	assert.Equal(t, "Id", ToPascalCase("id"))
	assert.Equal(t, "CreatedAt", ToPascalCase("createdAt"))
	assert.Equal(t, "A", ToPascalCase("__a"))
	assert.Equal(t, "", ToPascalCase(""))
}

func TestToPascalCaseUnderscoreRuns(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"_id", "id"},
		{"a__b", "A_b"},
		{"a___b", "A_B"},
		{"a_", "A_"},
		{"_", ""},
		{"zip_code_2", "ZipCode2"},
		{"2fa", "2fa"},
		{"élan_vital", "élanVital"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToPascalCase(tt.in))
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "first_name", SanitizeIdentifier("first-name"))
	assert.Equal(t, "a_b_c", SanitizeIdentifier("a.b c"))
	assert.Equal(t, "ok_1", SanitizeIdentifier("ok_1"))
}

func TestSanitizeLeadingDigit(t *testing.T) {
	assert.Equal(t, "Num1st", SanitizeLeadingDigit("1st"))
	assert.Equal(t, "First", SanitizeLeadingDigit("First"))
	assert.Equal(t, "", SanitizeLeadingDigit(""))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("Name"))
	assert.True(t, IsIdentifier("_x1"))
	assert.True(t, IsIdentifier("@class"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("Foo()"))
	assert.False(t, IsIdentifier("i]"))
	assert.False(t, IsIdentifier(""))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("public class A {}"))
	b := Fingerprint([]byte("public class A {}"))
	c := Fingerprint([]byte("public class B {}"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}

func TestFileHeader(t *testing.T) {
	h := FileHeader("//", "Models.cs")
	assert.True(t, strings.HasPrefix(h, "// Code generated by cs2ts "))
	assert.Contains(t, h, "from Models.cs. DO NOT EDIT.")
	assert.True(t, strings.HasSuffix(h, "\n\n"))
}
