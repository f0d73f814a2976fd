// Package nav builds the site navigation tree from the category catalog.
package nav

import "github.com/mygiftflora/storefront/internal/domain"

// maxDepth caps the navigation at category, subcategory, sub-subcategory.
const maxDepth = 3

// Node is one navigation entry.
type Node struct {
	Label    string `json:"label"`
	Path     string `json:"path"`
	Children []Node `json:"children,omitempty"`
}

// Build maps the category tree into navigation nodes, pruning anything nested
// deeper than three levels and skipping unnamed categories.
func Build(categories []domain.Category) []Node {
	return build(categories, "/categories", 1)
}

func build(categories []domain.Category, basePath string, depth int) []Node {
	if depth > maxDepth || len(categories) == 0 {
		return nil
	}

	nodes := make([]Node, 0, len(categories))
	for _, category := range categories {
		label := category.Name
		if label == "" {
			continue
		}
		slug := category.Slug
		if slug == "" {
			slug = category.ID
		}
		if slug == "" {
			continue
		}

		path := basePath + "/" + slug
		nodes = append(nodes, Node{
			Label:    label,
			Path:     path,
			Children: build(category.Children, path, depth+1),
		})
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}
