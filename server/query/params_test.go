package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParamsInt(t *testing.T) {
	p := Params{"a": "42", "b": " 7 ", "c": "x"}

	v, ok := p.Int("a")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = p.Int("b")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = p.Int("c")
	assert.False(t, ok)

	_, ok = p.Int("missing")
	assert.False(t, ok)
}

func TestParamsIntList(t *testing.T) {
	p := Params{"ids": "1, 2,oops,3", "empty": ""}

	assert.Equal(t, []int32{1, 2, 3}, p.IntList("ids"))
	assert.Nil(t, p.IntList("empty"))
	assert.Nil(t, p.IntList("missing"))
}

func TestParamsStringList(t *testing.T) {
	p := Params{"tags": "#Quiet, ,#PetFriendly,"}

	assert.Equal(t, []string{"#Quiet", "#PetFriendly"}, p.StringList("tags"))
	assert.Nil(t, p.StringList("missing"))
}
