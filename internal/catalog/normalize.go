package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mygiftflora/storefront/internal/domain"
)

// flexString decodes a JSON field that backends emit as either a string or a
// number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	*s = flexString(data)
	return nil
}

// flexFloat decodes a JSON number that backends sometimes quote as a string.
// Unparseable values decode as zero rather than failing the whole payload.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		raw = strings.TrimSpace(value)
	}
	if raw == "" {
		*f = 0
		return nil
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(parsed)
	return nil
}

type rawProduct struct {
	ID              flexString `json:"id"`
	MongoID         flexString `json:"_id"`
	Name            string     `json:"name"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Price           flexFloat  `json:"price"`
	DiscountedSnake flexFloat  `json:"discounted_price"`
	DiscountedCamel flexFloat  `json:"discountedPrice"`
	MainImageSnake  string     `json:"main_image"`
	MainImageCamel  string     `json:"mainImage"`
	Image           string     `json:"image"`
	Slug            string     `json:"slug"`
	Category        flexString `json:"category"`
	InStockSnake    *bool      `json:"in_stock"`
	InStockCamel    *bool      `json:"inStock"`
}

type rawBanner struct {
	ID            flexString `json:"id"`
	MongoID       flexString `json:"_id"`
	Title         string     `json:"title"`
	Heading       string     `json:"heading"`
	Subtitle      string     `json:"subtitle"`
	SubText       string     `json:"sub_text"`
	Image         string     `json:"image"`
	ImageURLSnake string     `json:"image_url"`
	ImageURLCamel string     `json:"imageUrl"`
	Link          string     `json:"link"`
	Status        *bool      `json:"status"`
	Active        *bool      `json:"active"`
}

type rawCategory struct {
	ID            flexString    `json:"id"`
	MongoID       flexString    `json:"_id"`
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	ParentIDSnake flexString    `json:"parent_id"`
	ParentIDCamel flexString    `json:"parentId"`
	Children      []rawCategory `json:"children"`
	SubCategories []rawCategory `json:"subcategories"`
}

type rawHomeData struct {
	Banners       []rawBanner   `json:"banners"`
	Sliders       []rawBanner   `json:"sliders"`
	Categories    []rawCategory `json:"categories"`
	NewArrivals   []rawProduct  `json:"newArrivals"`
	NewArrivalsSn []rawProduct  `json:"new_arrivals"`
	Featured      []rawProduct  `json:"featuredProducts"`
	FeaturedSnake []rawProduct  `json:"featured_products"`
	TodaysSpecial []rawProduct  `json:"todaysSpecial"`
	TodaysSnake   []rawProduct  `json:"todays_special"`
}

type homeEnvelope struct {
	Data *rawHomeData `json:"data"`
}

// normalizer folds the heterogeneous backend field spellings into the
// canonical domain shapes and sanitises free-text fields on the way in.
type normalizer struct {
	text    *bluemonday.Policy
	rich    *bluemonday.Policy
	uploads string
}

func newNormalizer(uploadsBaseURL string) *normalizer {
	return &normalizer{
		text:    bluemonday.StrictPolicy(),
		rich:    bluemonday.UGCPolicy(),
		uploads: uploadsBaseURL,
	}
}

func (n *normalizer) product(raw rawProduct) domain.Product {
	id := firstNonEmpty(string(raw.ID), string(raw.MongoID))
	name := n.text.Sanitize(firstNonEmpty(raw.Name, raw.Title))

	price := float64(raw.Price)
	discounted := float64(raw.DiscountedSnake)
	if discounted == 0 {
		discounted = float64(raw.DiscountedCamel)
	}

	effective := price
	original := 0.0
	if discounted > 0 {
		effective = discounted
		original = price
	}
	if effective < 0 {
		effective = 0
	}
	if original < 0 {
		original = 0
	}

	slug := firstNonEmpty(raw.Slug, id)
	inStock := true
	if raw.InStockSnake != nil {
		inStock = *raw.InStockSnake
	} else if raw.InStockCamel != nil {
		inStock = *raw.InStockCamel
	}

	return domain.Product{
		ID:            id,
		Name:          name,
		Description:   n.rich.Sanitize(raw.Description),
		Price:         effective,
		OriginalPrice: original,
		Image:         RebuildImageURL(n.uploads, firstNonEmpty(raw.MainImageSnake, raw.MainImageCamel, raw.Image)),
		Path:          "/products/" + slug,
		Category:      n.text.Sanitize(string(raw.Category)),
		InStock:       inStock,
	}
}

func (n *normalizer) banner(raw rawBanner) domain.Banner {
	active := true
	if raw.Status != nil {
		active = *raw.Status
	} else if raw.Active != nil {
		active = *raw.Active
	}

	return domain.Banner{
		ID:       firstNonEmpty(string(raw.ID), string(raw.MongoID)),
		Title:    n.text.Sanitize(firstNonEmpty(raw.Title, raw.Heading)),
		Subtitle: n.text.Sanitize(firstNonEmpty(raw.Subtitle, raw.SubText)),
		Image:    RebuildImageURL(n.uploads, firstNonEmpty(raw.Image, raw.ImageURLSnake, raw.ImageURLCamel)),
		Link:     raw.Link,
		Active:   active,
	}
}

func (n *normalizer) category(raw rawCategory) domain.Category {
	id := firstNonEmpty(string(raw.ID), string(raw.MongoID))
	name := n.text.Sanitize(firstNonEmpty(raw.Name, raw.Title))
	slug := raw.Slug
	if slug == "" {
		slug = slugify(name)
	}

	children := raw.Children
	if len(children) == 0 {
		children = raw.SubCategories
	}

	category := domain.Category{
		ID:       id,
		Name:     name,
		Slug:     slug,
		ParentID: firstNonEmpty(string(raw.ParentIDSnake), string(raw.ParentIDCamel)),
	}
	for _, child := range children {
		category.Children = append(category.Children, n.category(child))
	}
	return category
}

func (n *normalizer) products(raws []rawProduct) []domain.Product {
	if len(raws) == 0 {
		return nil
	}
	out := make([]domain.Product, 0, len(raws))
	for _, raw := range raws {
		product := n.product(raw)
		if product.ID == "" {
			continue
		}
		out = append(out, product)
	}
	return out
}

func (n *normalizer) home(raw rawHomeData) domain.HomePayload {
	banners := raw.Banners
	if len(banners) == 0 {
		banners = raw.Sliders
	}

	payload := domain.HomePayload{
		NewArrivals:   n.products(coalesceProducts(raw.NewArrivals, raw.NewArrivalsSn)),
		Featured:      n.products(coalesceProducts(raw.Featured, raw.FeaturedSnake)),
		TodaysSpecial: n.products(coalesceProducts(raw.TodaysSpecial, raw.TodaysSnake)),
	}
	for _, banner := range banners {
		normalized := n.banner(banner)
		if normalized.ID == "" && normalized.Image == "" {
			continue
		}
		payload.Banners = append(payload.Banners, normalized)
	}
	for _, category := range raw.Categories {
		normalized := n.category(category)
		if normalized.ID == "" && normalized.Name == "" {
			continue
		}
		payload.Categories = append(payload.Categories, normalized)
	}
	return payload
}

func coalesceProducts(primary, secondary []rawProduct) []rawProduct {
	if len(primary) > 0 {
		return primary
	}
	return secondary
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
