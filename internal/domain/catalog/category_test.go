package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	root, err := NewCategory("Bikes", "Bikes")
	require.NoError(t, err)

	assert.Equal(t, "bikes", root.Slug)
	assert.Equal(t, 0, root.Level)
	assert.Nil(t, root.ParentID)
	assert.Equal(t, root.ID.String(), root.Path)
	assert.Equal(t, CategoryStatusActive, root.Status)

	_, err = NewCategory("", "Name")
	assert.Error(t, err)
	_, err = NewCategory("slug", "")
	assert.Error(t, err)
}

func TestNewChildCategory(t *testing.T) {
	root, err := NewCategory("bikes", "Bikes")
	require.NoError(t, err)

	child, err := NewChildCategory("mtb", "Mountain Bikes", root)
	require.NoError(t, err)

	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
	assert.Equal(t, root.Path+"/"+child.ID.String(), child.Path)
	assert.True(t, child.IsDescendantOf(root))
	assert.False(t, root.IsDescendantOf(child))

	_, err = NewChildCategory("x", "X", nil)
	assert.Error(t, err)
}

func TestNewChildCategory_MaxDepth(t *testing.T) {
	current, err := NewCategory("l0", "Level 0")
	require.NoError(t, err)

	for i := 1; i < MaxCategoryDepth; i++ {
		current, err = NewChildCategory("child", "Child", current)
		require.NoError(t, err)
	}

	_, err = NewChildCategory("toodeep", "Too Deep", current)
	assert.Error(t, err)
}

func TestCategory_MoveTo(t *testing.T) {
	rootA, err := NewCategory("a", "A")
	require.NoError(t, err)
	rootB, err := NewCategory("b", "B")
	require.NoError(t, err)
	child, err := NewChildCategory("c", "C", rootA)
	require.NoError(t, err)
	grandchild, err := NewChildCategory("g", "G", child)
	require.NoError(t, err)

	// moving under itself or its own subtree is rejected
	_, err = child.MoveTo(child)
	assert.Error(t, err)
	_, err = child.MoveTo(grandchild)
	assert.Error(t, err)

	oldPath, err := child.MoveTo(rootB)
	require.NoError(t, err)

	assert.Equal(t, rootA.Path+"/"+child.ID.String(), oldPath)
	assert.Equal(t, rootB.Path+"/"+child.ID.String(), child.Path)
	assert.Equal(t, 1, child.Level)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, rootB.ID, *child.ParentID)
}

func TestCategory_Update(t *testing.T) {
	category, err := NewCategory("bikes", "Bikes")
	require.NoError(t, err)

	require.NoError(t, category.Update("City Bikes"))
	assert.Equal(t, "City Bikes", category.Name)
	assert.Error(t, category.Update(""))

	category.Deactivate()
	assert.Equal(t, CategoryStatusInactive, category.Status)
}
