package nav

import (
	"testing"

	"github.com/mygiftflora/storefront/internal/domain"
)

func TestBuildThreeLevelTree(t *testing.T) {
	categories := []domain.Category{
		{
			ID: "c1", Name: "Flowers", Slug: "flowers",
			Children: []domain.Category{
				{
					ID: "c2", Name: "Bouquets", Slug: "bouquets",
					Children: []domain.Category{
						{ID: "c3", Name: "Roses", Slug: "roses"},
					},
				},
			},
		},
	}

	nodes := Build(categories)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 root node, got %d", len(nodes))
	}
	root := nodes[0]
	if root.Label != "Flowers" || root.Path != "/categories/flowers" {
		t.Fatalf("unexpected root node: %+v", root)
	}
	child := root.Children[0]
	if child.Path != "/categories/flowers/bouquets" {
		t.Fatalf("expected nested path, got %q", child.Path)
	}
	leaf := child.Children[0]
	if leaf.Path != "/categories/flowers/bouquets/roses" {
		t.Fatalf("expected third level path, got %q", leaf.Path)
	}
}

func TestBuildPrunesBeyondThreeLevels(t *testing.T) {
	categories := []domain.Category{
		{
			ID: "c1", Name: "A", Slug: "a",
			Children: []domain.Category{
				{
					ID: "c2", Name: "B", Slug: "b",
					Children: []domain.Category{
						{
							ID: "c3", Name: "C", Slug: "c",
							Children: []domain.Category{
								{ID: "c4", Name: "D", Slug: "d"},
							},
						},
					},
				},
			},
		},
	}

	nodes := Build(categories)
	leaf := nodes[0].Children[0].Children[0]
	if len(leaf.Children) != 0 {
		t.Fatalf("expected fourth level pruned, got %+v", leaf.Children)
	}
}

func TestBuildSkipsUnnamedAndFallsBackToID(t *testing.T) {
	categories := []domain.Category{
		{ID: "c1", Name: ""},
		{ID: "c2", Name: "Named"},
	}

	nodes := Build(categories)
	if len(nodes) != 1 {
		t.Fatalf("expected unnamed category skipped, got %d nodes", len(nodes))
	}
	if nodes[0].Path != "/categories/c2" {
		t.Fatalf("expected id used when slug missing, got %q", nodes[0].Path)
	}
}
