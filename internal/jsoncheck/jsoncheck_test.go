package jsoncheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Check([]byte(`{"a":[1,2,{"b":null}]}`)))
	assert.NoError(Check([]byte("  {\"a\":1}  \n")))

	err := Check([]byte(`{"a":1,}`))
	var synErr *SyntaxError
	if assert.True(errors.As(err, &synErr)) {
		assert.Equal(1, synErr.Line)
		assert.Equal(8, synErr.Column)
	}

	err = Check([]byte("{\n  \"a\": 1,\n}"))
	if assert.True(errors.As(err, &synErr)) {
		assert.Equal(3, synErr.Line)
		assert.Equal(1, synErr.Column)
		assert.Contains(synErr.Error(), "line 3, column 1")
	}

	assert.Error(Check([]byte(`{"a":1 /* c */}`)))
	assert.Error(Check(nil))
}

func TestPosition(t *testing.T) {
	assert := assert.New(t)

	data := []byte("ab\ncd\nef")

	line, col := Position(data, 1)
	assert.Equal(1, line)
	assert.Equal(1, col)

	line, col = Position(data, 5)
	assert.Equal(2, line)
	assert.Equal(2, col)

	line, col = Position(data, 100)
	assert.Equal(3, line)
	assert.Equal(2, col)
}

func TestParseLayout(t *testing.T) {
	assert := assert.New(t)

	l, err := ParseLayout("")
	assert.NoError(err)
	assert.Equal(Keep, l)

	l, err = ParseLayout("ugly")
	assert.NoError(err)
	assert.Equal(Ugly, l)

	_, err = ParseLayout("compact")
	assert.Error(err)
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	src := []byte("{ \"a\" :  1 ,\n \"b\": \"x y\" }")

	assert.Equal(src, Format(src, Keep, ""))
	assert.Equal(`{"a":1,"b":"x y"}`, string(Format(src, Ugly, "")))
	assert.Equal("{\n  \"a\": 1,\n  \"b\": \"x y\"\n}\n", string(Format(src, Pretty, "")))
	assert.Equal("{\n\t\"a\": 1,\n\t\"b\": \"x y\"\n}\n", string(Format(src, Pretty, "\t")))
}

func TestVerify(t *testing.T) {
	assert := assert.New(t)

	original := []byte("{\n  // c\n  \"a\": [1, 2,],\n}")

	assert.NoError(Verify(original, []byte("{\n      \n  \"a\": [1, 2 ]\n }")))
	assert.NoError(Verify(original, []byte(`{"a":[1,2]}`)))

	// comment stripped but trailing comma left in place
	err := Verify(original, []byte("{\n\n  \"a\": [1, 2,],\n}"))
	var mismatch *MismatchError
	if assert.True(errors.As(err, &mismatch)) {
		assert.Equal(9, mismatch.Offset)
	}

	_, err = Standardize([]byte(`{"a":`))
	assert.ErrorContains(err, "HuJSON")
}
