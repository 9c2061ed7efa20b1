package model

// SubcategoryOptions lists the variant option sets available to products
// in one subcategory. Empty slices mean the axis does not apply.
type SubcategoryOptions struct {
	Sizes     []string `json:"sizes"`
	Colors    []string `json:"colors"`
	Materials []string `json:"materials"`
}

// catalogConfig is the static category configuration: which subcategories
// each category offers and which size/color/material options their
// variants may use. Variants are category- and subcategory-specific, so
// the admin editor resets the variant list on category change.
var catalogConfig = map[ProductCategory]map[string]SubcategoryOptions{
	CategoryApparel: {
		"saree": {
			Colors:    []string{"Red", "Maroon", "Green", "Blue", "Black", "Golden"},
			Materials: []string{"Cotton", "Silk", "Georgette", "Jamdani", "Katan"},
		},
		"salwar_kameez": {
			Sizes:     []string{"S", "M", "L", "XL", "XXL"},
			Colors:    []string{"Red", "Pink", "Green", "Blue", "Black", "White"},
			Materials: []string{"Cotton", "Linen", "Georgette"},
		},
		"kurti": {
			Sizes:  []string{"S", "M", "L", "XL"},
			Colors: []string{"Red", "Yellow", "Green", "Blue", "Black", "White"},
		},
		"hijab": {
			Colors:    []string{"Black", "White", "Beige", "Navy", "Maroon"},
			Materials: []string{"Chiffon", "Jersey", "Cotton"},
		},
	},
	CategoryJewelry: {
		"ring": {
			Sizes:     []string{"14", "16", "18", "20"},
			Materials: []string{"Gold Plated", "Silver", "Brass", "Stainless Steel"},
		},
		"necklace": {
			Colors:    []string{"Gold", "Silver", "Rose Gold"},
			Materials: []string{"Gold Plated", "Silver", "Pearl", "Beads"},
		},
		"earring": {
			Colors:    []string{"Gold", "Silver", "Rose Gold"},
			Materials: []string{"Gold Plated", "Silver", "Brass"},
		},
		"bracelet": {
			Sizes:     []string{"Free Size", "Adjustable"},
			Materials: []string{"Gold Plated", "Silver", "Leather", "Beads"},
		},
		"bangle": {
			Sizes:     []string{"2.4", "2.6", "2.8"},
			Materials: []string{"Gold Plated", "Brass", "Glass"},
		},
	},
	CategoryBeauty: {
		"skincare": {
			Sizes: []string{"30ml", "50ml", "100ml"},
		},
		"makeup": {
			Colors: []string{"Nude", "Coral", "Red", "Berry", "Brown"},
		},
		"fragrance": {
			Sizes: []string{"30ml", "50ml", "100ml"},
		},
		"haircare": {
			Sizes: []string{"100ml", "200ml", "400ml"},
		},
	},
}

// Categories returns the closed category enumeration in display order.
func Categories() []ProductCategory {
	return []ProductCategory{CategoryApparel, CategoryJewelry, CategoryBeauty}
}

// CategoryOptions returns the subcategory map for a category.
func CategoryOptions(category ProductCategory) (map[string]SubcategoryOptions, bool) {
	options, ok := catalogConfig[category]
	return options, ok
}

// ValidSubcategory reports whether subcategory belongs to category.
func ValidSubcategory(category ProductCategory, subcategory string) bool {
	options, ok := catalogConfig[category]
	if !ok {
		return false
	}
	_, ok = options[subcategory]
	return ok
}

// OptionsFor returns the variant option sets for a category/subcategory.
func OptionsFor(category ProductCategory, subcategory string) (SubcategoryOptions, bool) {
	options, ok := catalogConfig[category]
	if !ok {
		return SubcategoryOptions{}, false
	}
	subOptions, ok := options[subcategory]
	return subOptions, ok
}
