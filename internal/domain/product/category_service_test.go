// internal/domain/product/category_service_test.go
package product

import (
	"testing"
)

func uintp(v uint) *uint { return &v }

func TestBuildCategoryTree_Empty(t *testing.T) {
	tree := BuildCategoryTree(nil)
	if len(tree) != 0 {
		t.Errorf("expected empty tree, got %d roots", len(tree))
	}
}

func TestBuildCategoryTree_NestsChildrenUnderParents(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Clothing"},
		{ID: 2, Name: "Shoes"},
		{ID: 3, Name: "Shirts", ParentID: uintp(1)},
		{ID: 4, Name: "Tees", ParentID: uintp(3)},
		{ID: 5, Name: "Sneakers", ParentID: uintp(2)},
	}

	tree := BuildCategoryTree(categories)

	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	if tree[0].Name != "Clothing" || tree[1].Name != "Shoes" {
		t.Fatalf("unexpected root order: %q, %q", tree[0].Name, tree[1].Name)
	}

	if len(tree[0].Children) != 1 || tree[0].Children[0].Name != "Shirts" {
		t.Fatalf("expected Shirts under Clothing, got %+v", tree[0].Children)
	}
	shirts := tree[0].Children[0]
	if len(shirts.Children) != 1 || shirts.Children[0].Name != "Tees" {
		t.Errorf("expected Tees under Shirts, got %+v", shirts.Children)
	}

	if len(tree[1].Children) != 1 || tree[1].Children[0].Name != "Sneakers" {
		t.Errorf("expected Sneakers under Shoes, got %+v", tree[1].Children)
	}
}

func TestBuildCategoryTree_OrphanBecomesRoot(t *testing.T) {
	// Parent 99 is not in the list (e.g. filtered out as inactive);
	// the child must not silently disappear.
	categories := []Category{
		{ID: 1, Name: "Visible"},
		{ID: 2, Name: "Orphan", ParentID: uintp(99)},
	}

	tree := BuildCategoryTree(categories)
	if len(tree) != 2 {
		t.Fatalf("expected orphan to surface as a root, got %d roots", len(tree))
	}
}
