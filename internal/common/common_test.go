package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet_FirstWins(t *testing.T) {
	s := NewOrderedSet[string]()
	s.AddAll("email", "firstName", "email", "lastName", "firstName")

	assert.Equal(t, []string{"email", "firstName", "lastName"}, s.Items())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("lastName"))
	assert.False(t, s.Add("email"))
}

func TestFoldKey(t *testing.T) {
	assert.Equal(t, FoldKey("userEmail"), FoldKey("USEREMAIL"))
	assert.Equal(t, FoldKey("Ünit"), FoldKey("üNIT"))
	assert.NotEqual(t, FoldKey("userEmail"), FoldKey("userMail"))
}

func TestSliceHelpers(t *testing.T) {
	assert.True(t, IsEmpty([]int{}))
	assert.True(t, IsSingle([]int{1}))
	assert.True(t, IsMultiple([]int{1, 2}))

	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)

	assert.Equal(t, "shop", PkgAlias("projmeta/examples/shop"))
	assert.Equal(t, "go_json", PkgAlias("github.com/goccy/go-json"))
	assert.Equal(t, "fracturing_space", PkgAlias("github.com/louisbranch/fracturing.space"))
	assert.Empty(t, PkgAlias(""))
}
